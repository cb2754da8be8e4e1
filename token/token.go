package token

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // A, COUNT, x1, ...
	NUMBER = "NUMBER" // 10, 2.5, 1E3
	STRING = "STRING" // "A string literal"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"

	LT = "<"
	GT = ">"

	EQ     = "=="
	NOT_EQ = "<>"
	GTE    = ">="
	LTE    = "<="

	LAND = "&&"
	LOR  = "||"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"

	LPAREN = "("
	RPAREN = ")"

	// Keywords
	AND    = "AND"
	END    = "END"
	FOR    = "FOR"
	GOSUB  = "GOSUB"
	GOTO   = "GOTO"
	IF     = "IF"
	INPUT  = "INPUT"
	INT    = "INT"
	LET    = "LET"
	NEXT   = "NEXT"
	NOT    = "NOT"
	OR     = "OR"
	PRINT  = "PRINT"
	REM    = "REM"
	RETURN = "RETURN"
	RND    = "RND"
	STEP   = "STEP"
	THEN   = "THEN"
	TO     = "TO"
)

type Token struct {
	Type    TokenType
	Literal string
}

var keywords = map[string]TokenType{
	"AND":    AND,
	"END":    END,
	"FOR":    FOR,
	"GOSUB":  GOSUB,
	"GOTO":   GOTO,
	"IF":     IF,
	"INPUT":  INPUT,
	"INT":    INT,
	"LET":    LET,
	"NEXT":   NEXT,
	"NOT":    NOT,
	"OR":     OR,
	"PRINT":  PRINT,
	"REM":    REM,
	"RETURN": RETURN,
	"RND":    RND,
	"STEP":   STEP,
	"THEN":   THEN,
	"TO":     TO,
}

// Commands lists the statements a program line may start with
var Commands = []TokenType{PRINT, LET, INPUT, GOTO, GOSUB, RETURN, IF, FOR, NEXT, END, REM}

func LookupIdent(ident string) TokenType {

	if tok, ok := keywords[Normalize(ident)]; ok {
		return tok
	}
	return IDENT
}

// Normalize folds identifiers and keywords to the one case
// BASIC matches them in.
// A Caser carries state, so each call gets its own.
func Normalize(ident string) string {
	return cases.Upper(language.Und).String(ident)
}
