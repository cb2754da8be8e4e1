package ast

// Code allows iterating over the program subject to control transfer.
// currIndex is the program counter.
type Code struct {
	prog      *Program
	currIndex int // index into prog.stmts
}

// Value sends the current statement, false once execution
// has run off the end of the program
func (cd *Code) Value() (Statement, bool) {
	return cd.prog.Statement(cd.currIndex)
}

// Next moves to the following statement
// returns false if there isn't one
func (cd *Code) Next() bool {
	if cd.currIndex < cd.prog.Len() {
		cd.currIndex++
	}
	return cd.currIndex < cd.prog.Len()
}

// CurLine returns the current executing line number or zero if there isn't one
func (cd *Code) CurLine() int {
	stmt, ok := cd.Value()
	if !ok {
		return 0
	}
	return stmt.LineNum
}

// Index is the current program counter
func (cd *Code) Index() int {
	return cd.currIndex
}

// Jump to the target line, false if there is no such line
// in which case the program counter doesn't move
func (cd *Code) Jump(target int) bool {
	i, ok := cd.prog.FindLine(target)

	if ok {
		cd.currIndex = i
	}
	return ok
}

// JumpIndex moves the program counter directly, used to
// resume at a saved return point.  Anything past the end
// of the program leaves the cursor at the end.
func (cd *Code) JumpIndex(index int) {
	switch {
	case index < 0:
		cd.currIndex = 0
	case index > cd.prog.Len():
		cd.currIndex = cd.prog.Len()
	default:
		cd.currIndex = index
	}
}
