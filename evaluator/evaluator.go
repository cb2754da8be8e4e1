package evaluator

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/navionguy/nextbasic/ast"
	"github.com/navionguy/nextbasic/berrors"
	"github.com/navionguy/nextbasic/object"
	"github.com/navionguy/nextbasic/token"
)

// Action tells the run loop what to do after a statement
type Action int

const (
	Continue   Action = iota // move to the next statement in program order
	Jump                     // go to Next.Line
	Resume                   // go to the program counter in Next.Index
	Halt                     // stop the program
	AwaitInput               // suspend until a line of input is supplied
)

func (a Action) String() string {
	return []string{"Continue", "Jump", "Resume", "Halt", "AwaitInput"}[a]
}

// Next is the result of executing one statement
type Next struct {
	Action Action
	Line   int    // target line number for Jump
	Index  int    // target program counter for Resume
	Prompt string // prompt text for AwaitInput
	Var    string // variable that receives the input
}

var (
	letStmt      = regexp.MustCompile(`(?i)^LET\s+([^\s=]+)\s*=\s*(.+)$`)
	assignStmt   = regexp.MustCompile(`^([^\s=]+)\s*=\s*(.+)$`)
	inputStmt    = regexp.MustCompile(`(?i)^INPUT\s+(?:"([^"]*)"\s*;\s*)?(\S+)\s*$`)
	gotoStmt     = regexp.MustCompile(`(?i)^GOTO\s+(\d+)\s*$`)
	gosubStmt    = regexp.MustCompile(`(?i)^GOSUB\s+(\d+)\s*$`)
	ifStmt       = regexp.MustCompile(`(?i)^IF\s+(.+?)\s+THEN\s+(.+)$`)
	forStmt      = regexp.MustCompile(`(?i)^FOR\s+([^\s=]+)\s*=\s*(.+?)\s+TO\s+(.+?)(?:\s+STEP\s+(.+))?$`)
	nextStmt     = regexp.MustCompile(`(?i)^NEXT\s+(\S+)\s*$`)
	lineNumOnly  = regexp.MustCompile(`^\d+$`)
	validVarName = regexp.MustCompile(`^[A-Za-z]\w*$`)
)

// Execute runs one statement.  code is positioned on the statement
// being run, it is only read here, the run loop moves it.
func Execute(stmt ast.Statement, code *ast.Code, env *object.Environment, out object.Console) (Next, error) {
	src := strings.TrimSpace(stmt.Source)
	fields := strings.Fields(src)

	if len(fields) == 0 {
		return Next{Action: Continue}, nil
	}

	switch token.LookupIdent(fields[0]) {
	case token.PRINT:
		return evalPrintStatement(strings.TrimSpace(src[len(fields[0]):]), env, out)
	case token.LET:
		return evalLetStatement(src, env)
	case token.INPUT:
		return evalInputStatement(src)
	case token.GOTO:
		return evalGotoStatement(src)
	case token.GOSUB:
		return evalGosubStatement(src, code, env)
	case token.RETURN:
		return evalReturnStatement(env)
	case token.IF:
		return evalIfStatement(stmt, src, code, env, out)
	case token.FOR:
		return evalForStatement(src, code, env)
	case token.NEXT:
		return evalNextStatement(src, env)
	case token.END:
		return Next{Action: Halt}, nil
	case token.REM:
		return Next{Action: Continue}, nil
	}

	return evalImplicitLet(src, fields[0], env)
}

// CompleteInput stores the text typed for an INPUT.  It is trimmed and
// kept as a number when it reads as one.
func CompleteInput(name string, text string, env *object.Environment) {
	text = strings.TrimSpace(text)

	if v, ok := object.ParseNumber(text); ok {
		env.Set(name, &object.Number{Value: v})
		return
	}
	env.Set(name, &object.String{Value: text})
}

func evalPrintStatement(args string, env *object.Environment, out object.Console) (Next, error) {
	var line bytes.Buffer

	parts := splitPrintArgs(args)
	for i, part := range parts {
		val, err := evalPrintPart(part.value, env)
		if err != nil {
			return Next{}, err
		}

		if i > 0 && parts[i-1].sep == ',' {
			line.WriteString(" ")
		}
		line.WriteString(val)
	}

	out.Println(line.String())
	return Next{Action: Continue}, nil
}

type printArg struct {
	value string
	sep   byte // separator that followed the value, zero for the last one
}

// splits on , and ; that aren't inside quotes
// an empty trailing segment is dropped
func splitPrintArgs(args string) []printArg {
	var parts []printArg
	var cur bytes.Buffer
	inString := false

	for i := 0; i < len(args); i++ {
		ch := args[i]
		if ch == '"' {
			inString = !inString
		}

		if !inString && (ch == ',' || ch == ';') {
			parts = append(parts, printArg{value: strings.TrimSpace(cur.String()), sep: ch})
			cur.Reset()
			continue
		}
		cur.WriteByte(ch)
	}

	if last := strings.TrimSpace(cur.String()); len(last) > 0 {
		parts = append(parts, printArg{value: last})
	}

	return parts
}

// evalPrintPart turns one PRINT segment into text.  Unset variables
// are still an error, but a segment that just won't evaluate is
// printed as written.
func evalPrintPart(part string, env *object.Environment) (string, error) {
	if isStringLiteral(part) {
		return part[1 : len(part)-1], nil
	}

	val, err := Evaluate(part, env)
	if err == nil {
		return val.Inspect(), nil
	}

	if berrors.Is(err, berrors.UndefinedVariable) {
		return "", err
	}

	if strings.Contains(part, `"`) {
		return juxtapose(part, env)
	}

	return part, nil
}

// juxtapose handles segments like "Hello " NAME where literals and
// variables sit side by side without an operator
func juxtapose(part string, env *object.Environment) (string, error) {
	var out bytes.Buffer

	for i := 0; i < len(part); {
		ch := part[i]

		switch {
		case ch == '"':
			end := strings.IndexByte(part[i+1:], '"')
			if end < 0 {
				out.WriteString(part[i+1:])
				return out.String(), nil
			}
			out.WriteString(part[i+1 : i+1+end])
			i += end + 2

		case isIdentStart(ch):
			start := i
			for i < len(part) && isIdentChar(part[i]) {
				i++
			}
			val, err := Evaluate(part[start:i], env)
			if err != nil {
				return "", err
			}
			out.WriteString(val.Inspect())

		case ch == ' ' || ch == '\t':
			i++

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String(), nil
}

func evalLetStatement(src string, env *object.Environment) (Next, error) {
	parts := letStmt.FindStringSubmatch(src)
	if parts == nil {
		return Next{}, berrors.New(berrors.InvalidLetSyntax, "%s", src)
	}

	return assign(parts[1], parts[2], env)
}

// statements that aren't commands can still be NAME = value
func evalImplicitLet(src string, cmd string, env *object.Environment) (Next, error) {
	parts := assignStmt.FindStringSubmatch(src)
	if parts == nil {
		return Next{}, berrors.New(berrors.UnknownCommand, "%s (valid commands: %s)", cmd, validCommands())
	}

	return assign(parts[1], parts[2], env)
}

func validCommands() string {
	cmds := make([]string, len(token.Commands))
	for i, c := range token.Commands {
		cmds[i] = string(c)
	}
	return strings.Join(cmds, ", ")
}

// validName rejects malformed names and keywords, RND or TO can't be variables
func validName(name string) bool {
	return validVarName.MatchString(name) && token.LookupIdent(name) == token.IDENT
}

func assign(name string, expr string, env *object.Environment) (Next, error) {
	if !validName(name) {
		return Next{}, berrors.New(berrors.InvalidVariableName, "%s", name)
	}

	val, err := Evaluate(expr, env)
	if err != nil {
		return Next{}, err
	}

	env.Set(name, val)
	return Next{Action: Continue}, nil
}

// INPUT doesn't read anything itself, it asks the run loop to
func evalInputStatement(src string) (Next, error) {
	parts := inputStmt.FindStringSubmatch(src)
	if parts == nil {
		return Next{}, berrors.New(berrors.InvalidInputSyntax, "%s", src)
	}

	if !validName(parts[2]) {
		return Next{}, berrors.New(berrors.InvalidVariableName, "%s", parts[2])
	}

	return Next{Action: AwaitInput, Prompt: parts[1], Var: token.Normalize(parts[2])}, nil
}

// Transfer control to the indicated line number, the run loop
// checks that the line exists
func evalGotoStatement(src string) (Next, error) {
	parts := gotoStmt.FindStringSubmatch(src)
	if parts == nil {
		return Next{}, berrors.New(berrors.InvalidGotoSyntax, "%s", src)
	}

	line, err := strconv.Atoi(parts[1])
	if err != nil {
		return Next{}, berrors.New(berrors.InvalidGotoSyntax, "%s", src)
	}

	return Next{Action: Jump, Line: line}, nil
}

// GOSUB saves the statement after this one as the return point
func evalGosubStatement(src string, code *ast.Code, env *object.Environment) (Next, error) {
	parts := gosubStmt.FindStringSubmatch(src)
	if parts == nil {
		return Next{}, berrors.New(berrors.InvalidGosubSyntax, "%s", src)
	}

	line, err := strconv.Atoi(parts[1])
	if err != nil {
		return Next{}, berrors.New(berrors.InvalidGosubSyntax, "%s", src)
	}

	env.PushReturn(code.Index() + 1)
	return Next{Action: Jump, Line: line}, nil
}

func evalReturnStatement(env *object.Environment) (Next, error) {
	rp, ok := env.PopReturn()
	if !ok {
		return Next{}, berrors.Std(berrors.ReturnWithoutGosub)
	}

	return Next{Action: Resume, Index: rp}, nil
}

// IF either jumps, or runs the THEN clause as a statement of its own
func evalIfStatement(stmt ast.Statement, src string, code *ast.Code, env *object.Environment, out object.Console) (Next, error) {
	parts := ifStmt.FindStringSubmatch(src)
	if parts == nil {
		return Next{}, berrors.New(berrors.InvalidIfSyntax, "%s", src)
	}

	cond, err := EvaluateCondition(parts[1], env)
	if err != nil {
		return Next{}, err
	}

	if !cond {
		return Next{Action: Continue}, nil
	}

	then := strings.TrimSpace(parts[2])
	if lineNumOnly.MatchString(then) {
		line, err := strconv.Atoi(then)
		if err != nil {
			return Next{}, berrors.New(berrors.InvalidIfSyntax, "%s", src)
		}
		return Next{Action: Jump, Line: line}, nil
	}

	return Execute(ast.Statement{LineNum: stmt.LineNum, Source: then}, code, env, out)
}

func evalForStatement(src string, code *ast.Code, env *object.Environment) (Next, error) {
	parts := forStmt.FindStringSubmatch(src)
	if parts == nil {
		return Next{}, berrors.New(berrors.InvalidForSyntax, "%s", src)
	}

	name := parts[1]
	if !validName(name) {
		return Next{}, berrors.New(berrors.InvalidVariableName, "%s", name)
	}

	start, err := evalForBound(parts[2], env)
	if err != nil {
		return Next{}, err
	}

	end, err := evalForBound(parts[3], env)
	if err != nil {
		return Next{}, err
	}

	step := 1.0
	if len(parts[4]) > 0 {
		step, err = evalForBound(parts[4], env)
		if err != nil {
			return Next{}, err
		}
	}

	if step == 0 {
		return Next{}, berrors.Std(berrors.ZeroStep)
	}

	env.Set(name, &object.Number{Value: start})
	env.SetForLoop(name, &object.ForBlock{End: end, Step: step, Body: code.Index() + 1})

	return Next{Action: Continue}, nil
}

func evalForBound(expr string, env *object.Environment) (float64, error) {
	val, err := Evaluate(expr, env)
	if err != nil {
		return 0, err
	}

	num, ok := val.(*object.Number)
	if !ok {
		return 0, berrors.New(berrors.NonNumericForBounds, "%s", strings.TrimSpace(expr))
	}
	return num.Value, nil
}

// NEXT steps the variable and loops back while it is still in range
func evalNextStatement(src string, env *object.Environment) (Next, error) {
	parts := nextStmt.FindStringSubmatch(src)
	if parts == nil {
		return Next{}, berrors.New(berrors.InvalidNextSyntax, "%s", src)
	}

	name := token.Normalize(parts[1])
	blk, ok := env.GetForLoop(name)
	if !ok {
		return Next{}, berrors.New(berrors.NextWithoutFor, "%s", name)
	}

	cur, ok := env.Get(name)
	num, isNum := cur.(*object.Number)
	if !ok || !isNum {
		return Next{}, berrors.New(berrors.NonNumericForBounds, "%s", name)
	}

	val := num.Value + blk.Step
	env.Set(name, &object.Number{Value: val})

	if (blk.Step > 0 && val <= blk.End) || (blk.Step < 0 && val >= blk.End) {
		return Next{Action: Resume, Index: blk.Body}, nil
	}

	env.ClearForLoop(name)
	return Next{Action: Continue}, nil
}
