package evaluator

import (
	"errors"
	"math"

	"github.com/navionguy/nextbasic/object"
	"github.com/navionguy/nextbasic/token"
)

// BuiltinFunction is an intrinsic the expression parser can call
type BuiltinFunction func(env *object.Environment, args ...object.Object) (object.Object, error)

// Builtin describes one intrinsic
type Builtin struct {
	MinArgs int // arguments that must be supplied
	MaxArgs int // arguments that may be supplied
	Fn      BuiltinFunction
}

var builtins = map[token.TokenType]*Builtin{
	// RND takes an optional argument that is ignored
	token.RND: {
		MinArgs: 0,
		MaxArgs: 1,
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return &object.Number{Value: env.Random()}, nil
		},
	},
	token.INT: {
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			arg, ok := args[0].(*object.Number)

			if !ok {
				return nil, errors.New("INT needs a number")
			}

			return &object.Number{Value: math.Floor(arg.Value)}, nil
		},
	},
}
