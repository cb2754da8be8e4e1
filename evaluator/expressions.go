package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/navionguy/nextbasic/berrors"
	"github.com/navionguy/nextbasic/lexer"
	"github.com/navionguy/nextbasic/object"
	"github.com/navionguy/nextbasic/token"
)

// Evaluate works out the value of an expression using the current variables.
// Unset variables are an error, they never default to zero.
func Evaluate(expr string, env *object.Environment) (object.Object, error) {
	txt := strings.TrimSpace(expr)

	if isStringLiteral(txt) {
		return &object.String{Value: txt[1 : len(txt)-1]}, nil
	}

	if v, ok := object.ParseNumber(txt); ok {
		return &object.Number{Value: v}, nil
	}

	val, err := newExprParser(txt, env, false).parse()

	if err != nil {
		if berrors.Is(err, berrors.UndefinedVariable) {
			return nil, err
		}
		return nil, berrors.New(berrors.CannotEvaluateExpression, "%s", txt)
	}

	return val, nil
}

// a string literal is quoted at both ends with no quotes inside
func isStringLiteral(txt string) bool {
	if len(txt) < 2 || txt[0] != '"' || txt[len(txt)-1] != '"' {
		return false
	}
	return !strings.Contains(txt[1:len(txt)-1], `"`)
}

// exprParser is a recursive descent evaluator.  Values are computed
// while parsing, there is no tree built.
// When logical is set it also accepts comparisons and AND/OR/NOT,
// and any identifier it meets is one the rewriter couldn't resolve.
type exprParser struct {
	l       *lexer.Lexer
	cur     token.Token
	env     *object.Environment
	logical bool
}

func newExprParser(input string, env *object.Environment, logical bool) *exprParser {
	p := &exprParser{l: lexer.New(input), env: env, logical: logical}
	p.next()
	return p
}

func (p *exprParser) next() {
	p.cur = p.l.NextToken()
}

// parse the whole input, anything left over is a syntax error
func (p *exprParser) parse() (object.Object, error) {
	val, err := p.parseTop()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.EOF {
		return nil, fmt.Errorf("unexpected %q", p.cur.Literal)
	}
	return val, nil
}

func (p *exprParser) parseTop() (object.Object, error) {
	if p.logical {
		return p.parseOr()
	}
	return p.parseAdditive()
}

func (p *exprParser) parseOr() (object.Object, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.cur.Type == token.LOR || p.cur.Type == token.OR {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = boolNumber(truthy(left) || truthy(right))
	}
	return left, nil
}

func (p *exprParser) parseAnd() (object.Object, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.cur.Type == token.LAND || p.cur.Type == token.AND {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = boolNumber(truthy(left) && truthy(right))
	}
	return left, nil
}

func (p *exprParser) parseNot() (object.Object, error) {
	if p.cur.Type == token.BANG || p.cur.Type == token.NOT {
		p.next()
		val, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return boolNumber(!truthy(val)), nil
	}
	return p.parseComparison()
}

func (p *exprParser) parseComparison() (object.Object, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	switch p.cur.Type {
	case token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE:
		op := p.cur.Type
		p.next()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return compare(op, left, right)
	}
	return left, nil
}

func (p *exprParser) parseAdditive() (object.Object, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		op := p.cur.Type
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left, err = arith(op, left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *exprParser) parseTerm() (object.Object, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.cur.Type == token.ASTERISK || p.cur.Type == token.SLASH {
		op := p.cur.Type
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left, err = arith(op, left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *exprParser) parseUnary() (object.Object, error) {
	if p.cur.Type != token.MINUS && p.cur.Type != token.PLUS {
		return p.parsePrimary()
	}

	op := p.cur.Type
	p.next()
	val, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	num, ok := val.(*object.Number)
	if !ok {
		return nil, fmt.Errorf("unary %s on a string", op)
	}

	if op == token.MINUS {
		return &object.Number{Value: -num.Value}, nil
	}
	return num, nil
}

func (p *exprParser) parsePrimary() (object.Object, error) {
	tok := p.cur

	switch tok.Type {
	case token.NUMBER:
		p.next()
		v, ok := object.ParseNumber(tok.Literal)
		if !ok {
			return nil, fmt.Errorf("bad number %q", tok.Literal)
		}
		return &object.Number{Value: v}, nil

	case token.STRING:
		p.next()
		return &object.String{Value: tok.Literal}, nil

	case token.IDENT:
		p.next()
		if p.logical {
			return nil, fmt.Errorf("unresolved identifier %s", tok.Literal)
		}
		val, ok := p.env.Get(tok.Literal)
		if !ok {
			return nil, berrors.New(berrors.UndefinedVariable, "%s", token.Normalize(tok.Literal))
		}
		return val, nil

	case token.RND, token.INT:
		return p.parseBuiltin()

	case token.LPAREN:
		p.next()
		val, err := p.parseTop()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != token.RPAREN {
			return nil, fmt.Errorf("missing )")
		}
		p.next()
		return val, nil
	}

	return nil, fmt.Errorf("unexpected %q", tok.Literal)
}

// parses an intrinsic and its optional parenthesized arguments, then calls it
func (p *exprParser) parseBuiltin() (object.Object, error) {
	bi := builtins[p.cur.Type]
	name := token.Normalize(p.cur.Literal)
	p.next()

	var args []object.Object
	if p.cur.Type == token.LPAREN {
		p.next()
		for p.cur.Type != token.RPAREN {
			arg, err := p.parseTop()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.cur.Type != token.COMMA {
				break
			}
			p.next()
		}

		if p.cur.Type != token.RPAREN {
			return nil, fmt.Errorf("missing ) after %s", name)
		}
		p.next()
	}

	if len(args) < bi.MinArgs || len(args) > bi.MaxArgs {
		return nil, fmt.Errorf("wrong number of arguments to %s", name)
	}

	return bi.Fn(p.env, args...)
}

// arithmetic, a + with a string on either side concatenates
func arith(op token.TokenType, left, right object.Object) (object.Object, error) {
	lnum, lok := left.(*object.Number)
	rnum, rok := right.(*object.Number)

	if !lok || !rok {
		if op == token.PLUS {
			return &object.String{Value: left.Inspect() + right.Inspect()}, nil
		}
		return nil, fmt.Errorf("type mismatch on %s", op)
	}

	switch op {
	case token.PLUS:
		return &object.Number{Value: lnum.Value + rnum.Value}, nil
	case token.MINUS:
		return &object.Number{Value: lnum.Value - rnum.Value}, nil
	case token.ASTERISK:
		return &object.Number{Value: lnum.Value * rnum.Value}, nil
	case token.SLASH:
		return &object.Number{Value: lnum.Value / rnum.Value}, nil
	}

	return nil, fmt.Errorf("unsupported operator %s", op)
}

// compare two values, mixed types compare numerically if the string
// holds a number, otherwise they are simply unequal
func compare(op token.TokenType, left, right object.Object) (object.Object, error) {
	lnum, lok := left.(*object.Number)
	rnum, rok := right.(*object.Number)

	if lok && rok {
		return boolNumber(compareOrdered(op, lnum.Value, rnum.Value)), nil
	}

	if !lok && !rok {
		return boolNumber(compareOrdered(op, left.Inspect(), right.Inspect())), nil
	}

	lv, lparsed := asNumber(left)
	rv, rparsed := asNumber(right)
	if lparsed && rparsed {
		return boolNumber(compareOrdered(op, lv, rv)), nil
	}

	return boolNumber(op == token.NOT_EQ), nil
}

func asNumber(obj object.Object) (float64, bool) {
	switch val := obj.(type) {
	case *object.Number:
		return val.Value, true
	case *object.String:
		return object.ParseNumber(strings.TrimSpace(val.Value))
	}
	return 0, false
}

func compareOrdered[T float64 | string](op token.TokenType, left, right T) bool {
	switch op {
	case token.EQ:
		return left == right
	case token.NOT_EQ:
		return left != right
	case token.LT:
		return left < right
	case token.GT:
		return left > right
	case token.LTE:
		return left <= right
	case token.GTE:
		return left >= right
	}
	return false
}

// truthy follows the usual rule, zero and the empty string are false
func truthy(obj object.Object) bool {
	switch val := obj.(type) {
	case *object.Number:
		return val.Value != 0 && !math.IsNaN(val.Value)
	case *object.String:
		return len(val.Value) > 0
	}
	return false
}

func boolNumber(b bool) object.Object {
	if b {
		return &object.Number{Value: 1}
	}
	return &object.Number{Value: 0}
}
