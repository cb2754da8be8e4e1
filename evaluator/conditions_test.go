package evaluator

import (
	"testing"

	"github.com/navionguy/nextbasic/berrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EvaluateCondition(t *testing.T) {
	tests := []struct {
		inp string
		exp bool
	}{
		{inp: "A = 5", exp: true},
		{inp: "a = 6", exp: false},
		{inp: "A == 5", exp: true},
		{inp: "A <> 5", exp: false},
		{inp: "A != 4", exp: true},
		{inp: "A >= 5", exp: true},
		{inp: "A <= 4", exp: false},
		{inp: "A > B", exp: true},
		{inp: "B < 0", exp: true},
		{inp: "B = -2", exp: true},
		{inp: "(A = 5)", exp: true},
		{inp: "(A = 5) AND (B = 1)", exp: false},
		{inp: "A = 5 AND B = -2", exp: true},
		{inp: "A = 1 OR B = -2", exp: true},
		{inp: "NOT A = 1", exp: true},
		{inp: "not (A = 5)", exp: false},
		{inp: `NAME = "Bob"`, exp: true},
		{inp: `NAME <> "Bob"`, exp: false},
		{inp: `NAME = "A = 5"`, exp: false},
		{inp: `"x=y" = "x=y"`, exp: true},
		{inp: "A", exp: true},
		{inp: "A * 2 = 10", exp: true},
		{inp: "INT(A / 2) = 2", exp: true},
		{inp: "1E2 = 100", exp: true},
	}

	for _, tt := range tests {
		res, err := EvaluateCondition(tt.inp, testEnv())

		require.NoError(t, err, "EvaluateCondition(%q)", tt.inp)
		assert.Equal(t, tt.exp, res, "EvaluateCondition(%q)", tt.inp)
	}
}

func Test_EvaluateConditionErrors(t *testing.T) {
	tests := []struct {
		inp string
		msg string
	}{
		{inp: "Z = 1", msg: "Cannot evaluate condition: Z = 1 (as Z == 1)"},
		{inp: "A = ", msg: "Cannot evaluate condition: A = (as 5 ==)"},
		{inp: "A = 5 AND", msg: "Cannot evaluate condition: A = 5 AND (as 5 == 5 &&)"},
		{inp: `NAME = "Bob`},
	}

	for _, tt := range tests {
		_, err := EvaluateCondition(tt.inp, testEnv())

		require.Error(t, err, tt.inp)
		assert.True(t, berrors.Is(err, berrors.CannotEvaluateCondition), "%q gave %s", tt.inp, err)
		if len(tt.msg) > 0 {
			assert.Equal(t, tt.msg, err.Error())
		}
	}
}

func Test_StripParens(t *testing.T) {
	tests := []struct {
		inp string
		exp string
	}{
		{inp: "(A = 1)", exp: "A = 1"},
		{inp: "( A = 1 )", exp: "A = 1"},
		{inp: "(A = 1) AND (B = 2)", exp: "(A = 1) AND (B = 2)"},
		{inp: `(A = ")")`, exp: `A = ")"`},
		{inp: "A = 1", exp: "A = 1"},
		{inp: "()", exp: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, stripParens(tt.inp), tt.inp)
	}
}

func Test_RewriteEquals(t *testing.T) {
	tests := []struct {
		inp string
		exp string
	}{
		{inp: "5 = 5", exp: "5 == 5"},
		{inp: "5 == 5", exp: "5 == 5"},
		{inp: "5 <= 5", exp: "5 <= 5"},
		{inp: "5 >= 5", exp: "5 >= 5"},
		{inp: "5 != 5", exp: "5 != 5"},
		{inp: `"a=b" = "a=b"`, exp: `"a=b" == "a=b"`},
		{inp: "5=5", exp: "5==5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, rewriteEquals(tt.inp), tt.inp)
	}
}

func Test_SubstituteIdents(t *testing.T) {
	tests := []struct {
		inp string
		exp string
	}{
		{inp: "A = 5", exp: "5 = 5"},
		{inp: "B = 1", exp: "(-2) = 1"},
		{inp: `NAME = "NAME"`, exp: `"Bob" = "NAME"`},
		{inp: "A AND B OR NOT Q", exp: "5 && (-2) || ! Q"},
		{inp: "1E2 = A", exp: "1E2 = 5"},
		{inp: "A1 = 1", exp: "A1 = 1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, substituteIdents(tt.inp, testEnv()), tt.inp)
	}
}
