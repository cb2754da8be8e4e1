package berrors

import (
	"errors"
	"fmt"
)

const (
	InvalidLineFormat = iota + 1
	DuplicateLineNumber
	InvalidLetSyntax
	InvalidVariableName
	InvalidInputSyntax
	InvalidGotoSyntax
	InvalidGosubSyntax
	GotoTargetMissing
	ReturnWithoutGosub
	InvalidIfSyntax // 10
	InvalidForSyntax
	NonNumericForBounds
	ZeroStep
	InvalidNextSyntax
	NextWithoutFor
	UnknownCommand
	UndefinedVariable
	CannotEvaluateExpression
	CannotEvaluateCondition
	_ // 20
	_
	_
	_
	_
	_
	_
	_
	_
	_
	FileNotFound // 30
	NotATextFile
	NotADirectory
	AlreadyRunning
)

// TextForError returns the error text based on error number
func TextForError(err int) string {
	switch err {
	case InvalidLineFormat:
		return "Invalid line format"
	case DuplicateLineNumber:
		return "Duplicate line number"
	case InvalidLetSyntax:
		return "Invalid LET syntax"
	case InvalidVariableName:
		return "Invalid variable name"
	case InvalidInputSyntax:
		return "Invalid INPUT syntax"
	case InvalidGotoSyntax:
		return "Invalid GOTO syntax"
	case InvalidGosubSyntax:
		return "Invalid GOSUB syntax"
	case GotoTargetMissing:
		return "Line number does not exist"
	case ReturnWithoutGosub:
		return "RETURN without GOSUB"
	case InvalidIfSyntax:
		return "Invalid IF syntax"
	case InvalidForSyntax:
		return "Invalid FOR syntax"
	case NonNumericForBounds:
		return "FOR bounds must be numbers"
	case ZeroStep:
		return "STEP cannot be zero"
	case InvalidNextSyntax:
		return "Invalid NEXT syntax"
	case NextWithoutFor:
		return "NEXT without FOR"
	case UnknownCommand:
		return "Unknown command"
	case UndefinedVariable:
		return "Undefined variable"
	case CannotEvaluateExpression:
		return "Cannot evaluate expression"
	case CannotEvaluateCondition:
		return "Cannot evaluate condition"
	case FileNotFound:
		return "No such file"
	case NotATextFile:
		return "Not a text file"
	case NotADirectory:
		return "No such directory"
	case AlreadyRunning:
		return "A program is already running"
	}

	return "Unprintable error"
}

// BasicError carries an error number plus whatever detail
// makes the message useful to the person at the keyboard
type BasicError struct {
	Code   int
	Detail string
}

func (be *BasicError) Error() string {
	if len(be.Detail) == 0 {
		return TextForError(be.Code)
	}
	return TextForError(be.Code) + ": " + be.Detail
}

// New builds a BasicError, the detail is formatted like fmt.Sprintf
func New(code int, format string, a ...interface{}) *BasicError {
	return &BasicError{Code: code, Detail: fmt.Sprintf(format, a...)}
}

// Std builds a BasicError with no detail
func Std(code int) *BasicError {
	return &BasicError{Code: code}
}

// Is reports whether err, or anything it wraps, is a BasicError with code
func Is(err error, code int) bool {
	var be *BasicError
	if !errors.As(err, &be) {
		return false
	}
	return be.Code == code
}

// Code pulls the error number out of err, zero if it isn't a BasicError
func Code(err error) int {
	var be *BasicError
	if !errors.As(err, &be) {
		return 0
	}
	return be.Code
}
