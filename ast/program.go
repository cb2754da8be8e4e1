package ast

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/btree"
	"github.com/navionguy/nextbasic/berrors"
)

var (
	numberedLine = regexp.MustCompile(`^(\d+)\s+(.+)$`)
	numberOnly   = regexp.MustCompile(`^\d+$`)
)

// Statement is one numbered line of source
type Statement struct {
	LineNum int    // user assigned line number
	Source  string // the text after the line number, trimmed
}

func (s Statement) String() string {
	return fmt.Sprintf("%d %s", s.LineNum, s.Source)
}

//Program holds the loaded statements sorted by ascending line number.
//Once loaded it never changes, execution only moves a Code cursor over it.
type Program struct {
	stmts []Statement
}

// Load parses raw source lines into a Program
func Load(lines []string) (*Program, error) {
	tree := btree.NewG(8, func(a, b Statement) bool { return a.LineNum < b.LineNum })
	var dups []int

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if len(trimmed) == 0 || numberOnly.MatchString(trimmed) {
			continue
		}

		parts := numberedLine.FindStringSubmatch(trimmed)
		if parts == nil {
			return nil, berrors.New(berrors.InvalidLineFormat, "%s", trimmed)
		}

		num, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, berrors.New(berrors.InvalidLineFormat, "%s", trimmed)
		}

		if _, found := tree.ReplaceOrInsert(Statement{LineNum: num, Source: strings.TrimSpace(parts[2])}); found {
			dups = appendUnique(dups, num)
		}
	}

	if len(dups) > 0 {
		sort.Ints(dups)
		txt := make([]string, len(dups))
		for i, d := range dups {
			txt[i] = strconv.Itoa(d)
		}
		return nil, berrors.New(berrors.DuplicateLineNumber, "%s", strings.Join(txt, ", "))
	}

	p := &Program{stmts: make([]Statement, 0, tree.Len())}
	tree.Ascend(func(stmt Statement) bool {
		p.stmts = append(p.stmts, stmt)
		return true
	})

	return p, nil
}

func appendUnique(list []int, n int) []int {
	for _, v := range list {
		if v == n {
			return list
		}
	}
	return append(list, n)
}

// Len tells caller how many statements I have
func (p *Program) Len() int {
	return len(p.stmts)
}

// Statement returns the statement at index i
func (p *Program) Statement(i int) (Statement, bool) {
	if i < 0 || i >= len(p.stmts) {
		return Statement{}, false
	}
	return p.stmts[i], true
}

// FindLine returns the index of lineNum and true
// or false if the line doesn't exist
func (p *Program) FindLine(lineNum int) (int, bool) {
	i := sort.Search(len(p.stmts), func(i int) bool { return p.stmts[i].LineNum >= lineNum })

	if i < len(p.stmts) && p.stmts[i].LineNum == lineNum {
		return i, true
	}
	return 0, false
}

// String returns the program as a listing
func (p *Program) String() string {
	var out bytes.Buffer
	for _, stmt := range p.stmts {
		out.WriteString(stmt.String())
		out.WriteString("\n")
	}
	return out.String()
}

// StatementIter returns a cursor positioned on the first statement
func (p *Program) StatementIter() *Code {
	return &Code{prog: p}
}
