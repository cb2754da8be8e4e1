package ast

import (
	"testing"

	"github.com/navionguy/nextbasic/berrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load(t *testing.T) {
	tests := []struct {
		inp   []string
		lines []int
		srcs  []string
	}{
		{inp: []string{`20 PRINT "b"`, `10 PRINT "a"`}, lines: []int{10, 20}, srcs: []string{`PRINT "a"`, `PRINT "b"`}},
		{inp: []string{"", "   ", "  30   END  ", "5 REM start"}, lines: []int{5, 30}, srcs: []string{"REM start", "END"}},
		{inp: []string{"10 PRINT 1", "15", "20 END"}, lines: []int{10, 20}, srcs: []string{"PRINT 1", "END"}},
		{inp: nil, lines: []int{}, srcs: []string{}},
	}

	for _, tt := range tests {
		prog, err := Load(tt.inp)

		require.NoError(t, err)
		require.Equal(t, len(tt.lines), prog.Len())

		for i, stmt := range prog.stmts {
			assert.Equal(t, tt.lines[i], stmt.LineNum)
			assert.Equal(t, tt.srcs[i], stmt.Source)
		}
	}
}

func Test_LoadErrors(t *testing.T) {
	tests := []struct {
		inp  []string
		code int
		msg  string
	}{
		{inp: []string{"10 PRINT 1", "10 PRINT 2"}, code: berrors.DuplicateLineNumber, msg: "Duplicate line number: 10"},
		{inp: []string{"20 A=1", "10 A=1", "20 A=2", "10 A=3", "20 A=4"}, code: berrors.DuplicateLineNumber, msg: "Duplicate line number: 10, 20"},
		{inp: []string{"10 PRINT 1", "PRINT 2"}, code: berrors.InvalidLineFormat, msg: "Invalid line format: PRINT 2"},
		{inp: []string{"10PRINT"}, code: berrors.InvalidLineFormat, msg: "Invalid line format: 10PRINT"},
		{inp: []string{"99999999999999999999 END"}, code: berrors.InvalidLineFormat},
	}

	for _, tt := range tests {
		prog, err := Load(tt.inp)

		assert.Nil(t, prog)
		require.Error(t, err)
		assert.True(t, berrors.Is(err, tt.code), "expected code %d, got %s", tt.code, err)
		if len(tt.msg) > 0 {
			assert.Equal(t, tt.msg, err.Error())
		}
	}
}

func Test_LoadTwice(t *testing.T) {
	src := []string{"30 END", "10 LET A = 1", "20 PRINT A"}

	first, err := Load(src)
	require.NoError(t, err)
	second, err := Load(src)
	require.NoError(t, err)

	assert.Equal(t, first.stmts, second.stmts)
	assert.Equal(t, "10 LET A = 1\n20 PRINT A\n30 END\n", second.String())
}

func Test_FindLine(t *testing.T) {
	prog, err := Load([]string{"10 REM", "20 REM", "40 REM"})
	require.NoError(t, err)

	tests := []struct {
		line  int
		index int
		found bool
	}{
		{line: 10, index: 0, found: true},
		{line: 40, index: 2, found: true},
		{line: 30, found: false},
		{line: 5, found: false},
		{line: 50, found: false},
	}

	for _, tt := range tests {
		i, ok := prog.FindLine(tt.line)

		assert.Equal(t, tt.found, ok, "FindLine(%d)", tt.line)
		if tt.found {
			assert.Equal(t, tt.index, i)
		}
	}
}

func Test_CodeCursor(t *testing.T) {
	prog, err := Load([]string{"10 REM", "20 REM", "30 REM"})
	require.NoError(t, err)

	cd := prog.StatementIter()
	assert.Equal(t, 10, cd.CurLine())
	assert.True(t, cd.Next())
	assert.Equal(t, 20, cd.CurLine())

	assert.True(t, cd.Jump(30))
	assert.Equal(t, 2, cd.Index())
	assert.False(t, cd.Jump(25), "jumped to a missing line")
	assert.Equal(t, 30, cd.CurLine(), "failed jump moved the cursor")

	assert.False(t, cd.Next())
	assert.Equal(t, 3, cd.Index())
	assert.Equal(t, 0, cd.CurLine())
	_, ok := cd.Value()
	assert.False(t, ok)

	cd.JumpIndex(1)
	assert.Equal(t, 20, cd.CurLine())
	cd.JumpIndex(99)
	assert.Equal(t, 3, cd.Index())
	cd.JumpIndex(-4)
	assert.Equal(t, 10, cd.CurLine())
}
