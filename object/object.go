// Package object how the interpretor holds values during execution
package object

import (
	"context"
	"math"
	"regexp"
	"strconv"
)

// ObjectType can always be displayed as a string
type ObjectType string

// Object is any value a BASIC variable can hold
type Object interface {
	Type() ObjectType
	Inspect() string
}

const (
	NUMBER_OBJ = "NUMBER"
	STRING_OBJ = "STRING"
)

// Console is where program output goes, one line at a time
type Console interface {
	Println(string)
}

// InputSource supplies the text typed in response to an INPUT.
// ReadLine blocks until a line arrives or ctx is done.
type InputSource interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Number values, everything numeric is a double
type Number struct {
	Value float64
}

// Type returns my type
func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// Inspect returns value as a string, whole numbers
// print without a decimal point
func (n *Number) Inspect() string { return FormatNumber(n.Value) }

// String values
type String struct {
	Value string
}

// Type returns my type
func (s *String) Type() ObjectType { return STRING_OBJ }

// Inspect returns value as a string
func (s *String) Inspect() string { return s.Value }

// FormatNumber renders a float the way the terminal displays it
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0" // catches -0 too
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// only plain decimals count, strconv alone would take NaN, Inf and hex
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber accepts the whole of txt as a number, or fails
func ParseNumber(txt string) (float64, bool) {
	if !decimalNumber.MatchString(txt) {
		return 0, false
	}
	v, err := strconv.ParseFloat(txt, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
