package evaluator

import (
	"bytes"
	"strings"

	"github.com/navionguy/nextbasic/berrors"
	"github.com/navionguy/nextbasic/object"
	"github.com/navionguy/nextbasic/token"
)

// EvaluateCondition decides an IF.  The condition is first rewritten,
// variables replaced by their values, AND/OR/NOT and a lone = turned into
// their logical forms, and only then evaluated.
// Identifiers with no value survive the rewrite and make the
// evaluation fail.
func EvaluateCondition(cond string, env *object.Environment) (bool, error) {
	orig := strings.TrimSpace(cond)
	rewritten := rewriteEquals(substituteIdents(stripParens(orig), env))

	val, err := newExprParser(rewritten, env, true).parse()
	if err != nil {
		return false, berrors.New(berrors.CannotEvaluateCondition, "%s (as %s)", orig, rewritten)
	}

	return truthy(val), nil
}

// stripParens removes one layer of parentheses, but only when
// they wrap the whole condition
func stripParens(cond string) string {
	if len(cond) < 2 || cond[0] != '(' || cond[len(cond)-1] != ')' {
		return cond
	}

	depth := 0
	inString := false
	for i := 0; i < len(cond); i++ {
		switch {
		case cond[i] == '"':
			inString = !inString
		case inString:
		case cond[i] == '(':
			depth++
		case cond[i] == ')':
			depth--
			if depth == 0 && i != len(cond)-1 {
				return cond // the opening paren closed early
			}
		}
	}

	return strings.TrimSpace(cond[1 : len(cond)-1])
}

// substituteIdents walks the condition replacing each bound variable
// with its literal value, strings re-quoted, and each logical keyword
// with its operator.  Text inside string literals is left alone.
func substituteIdents(cond string, env *object.Environment) string {
	var out bytes.Buffer

	for i := 0; i < len(cond); {
		ch := cond[i]

		switch {
		case ch == '"':
			end := strings.IndexByte(cond[i+1:], '"')
			if end < 0 {
				out.WriteString(cond[i:])
				return out.String()
			}
			out.WriteString(cond[i : i+end+2])
			i += end + 2

		case isIdentStart(ch):
			start := i
			for i < len(cond) && isIdentChar(cond[i]) {
				i++
			}
			out.WriteString(replaceIdent(cond[start:i], env))

		case isDigit(ch):
			// numbers like 1E5 must not have their tail treated as a name
			for i < len(cond) && isIdentChar(cond[i]) {
				out.WriteByte(cond[i])
				i++
			}

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

func replaceIdent(ident string, env *object.Environment) string {
	switch token.LookupIdent(ident) {
	case token.AND:
		return "&&"
	case token.OR:
		return "||"
	case token.NOT:
		return "!"
	}

	val, ok := env.Get(ident)
	if !ok {
		return ident
	}

	switch v := val.(type) {
	case *object.String:
		return `"` + v.Value + `"`
	case *object.Number:
		if v.Value < 0 {
			return "(" + v.Inspect() + ")"
		}
	}
	return val.Inspect()
}

// rewriteEquals turns a comparison = into ==, leaving alone any = that
// is inside a string or already part of <=, >=, != or ==
func rewriteEquals(cond string) string {
	var out bytes.Buffer
	inString := false

	for i := 0; i < len(cond); i++ {
		ch := cond[i]

		if ch == '"' {
			inString = !inString
		}

		if ch != '=' || inString {
			out.WriteByte(ch)
			continue
		}

		prev := byte(0)
		if i > 0 {
			prev = cond[i-1]
		}
		next := byte(0)
		if i+1 < len(cond) {
			next = cond[i+1]
		}

		switch {
		case prev == '<' || prev == '>' || prev == '!' || prev == '=':
			out.WriteByte(ch)
		case next == '=':
			// first half of ==, copy both
			out.WriteString("==")
			i++
		default:
			out.WriteString("==")
		}
	}

	return out.String()
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
