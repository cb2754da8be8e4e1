package lexer

import (
	"github.com/navionguy/nextbasic/token"
)

//Lexer a lexical analyzer instance
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

//New create a new lexer object
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

//NextToken scans for the next token
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.EQ)
		} else {
			tok = newToken(token.ASSIGN, l.ch)
		}
	case ';':
		tok = newToken(token.SEMICOLON, l.ch)
	case '(':
		tok = newToken(token.LPAREN, l.ch)
	case ')':
		tok = newToken(token.RPAREN, l.ch)
	case ',':
		tok = newToken(token.COMMA, l.ch)
	case '+':
		tok = newToken(token.PLUS, l.ch)
	case '-':
		tok = newToken(token.MINUS, l.ch)
	case '/':
		tok = newToken(token.SLASH, l.ch)
	case '*':
		tok = newToken(token.ASTERISK, l.ch)
	case '!':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.NOT_EQ)
		} else {
			tok = newToken(token.BANG, l.ch)
		}
	case '&':
		if l.peekChar() == '&' {
			tok = l.twoCharToken(token.LAND)
		} else {
			tok = newToken(token.ILLEGAL, l.ch)
		}
	case '|':
		if l.peekChar() == '|' {
			tok = l.twoCharToken(token.LOR)
		} else {
			tok = newToken(token.ILLEGAL, l.ch)
		}
	case '<':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.LTE)
		} else if l.peekChar() == '>' {
			tok = l.twoCharToken(token.NOT_EQ)
		} else {
			tok = newToken(token.LT, l.ch)
		}
	case '>':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.GTE)
		} else {
			tok = newToken(token.GT, l.ch)
		}
	case '"':
		literal, closed := l.readString()
		tok = token.Token{Type: token.STRING, Literal: literal}
		if !closed {
			tok.Type = token.ILLEGAL
		}
	case 0:
		tok.Literal = token.EOF
		tok.Type = token.EOF
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return tok
		} else if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			tok.Type, tok.Literal = l.readNumber()
			return tok
		} else {
			tok = newToken(token.ILLEGAL, l.ch)
		}
	}

	l.readChar()
	return tok
}

// builds a two character operator, leaving the second char current
func (l *Lexer) twoCharToken(tt token.TokenType) token.Token {
	ch := l.ch
	l.readChar()
	return token.Token{Type: tt, Literal: string(ch) + string(l.ch)}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// reads up to the closing quote, false if the input ran out first
func (l *Lexer) readString() (string, bool) {
	position := l.position + 1
	for {
		l.readChar()
		if (l.ch == '"') || (l.ch == 0) {
			break
		}
	}

	return l.input[position:l.position], l.ch == '"'
}

// reads a numeric value, digits with an optional fraction
// and an optional exponent
func (l *Lexer) readNumber() (token.TokenType, string) {
	position := l.position
	seenDot := false
	seenExp := false

	for done := false; !done; {
		switch {
		case isDigit(l.ch):
			l.readChar()
		case l.ch == '.' && !seenDot && !seenExp:
			seenDot = true
			l.readChar()
		case (l.ch == 'e' || l.ch == 'E') && !seenExp && l.expFollows():
			seenExp = true
			l.readChar()
			if (l.ch == '-') || (l.ch == '+') {
				l.readChar()
			}
		default:
			done = true
		}
	}

	return token.NUMBER, l.input[position:l.position]
}

// an 'E' only belongs to the number if digits come after it
func (l *Lexer) expFollows() bool {
	next := l.peekChar()
	if next == '+' || next == '-' {
		if l.readPosition+1 >= len(l.input) {
			return false
		}
		next = l.input[l.readPosition+1]
	}
	return isDigit(next)
}

//peekChar - take a look at, but don't consume the next character
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}

	return l.input[l.readPosition]
}

func newToken(tokenType token.TokenType, ch byte) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch)}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}
