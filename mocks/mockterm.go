package mocks

import (
	"fmt"
	"strings"
	"sync"
)

// Expector checks output against the lines a test expects
type Expector struct {
	Exp    []string // lines still expected, in order
	Failed bool     // set when a line didn't match
}

// chkExpectations compares msg with the next expected line
func (ep *Expector) chkExpectations(msg string) {
	if len(ep.Exp) == 0 {
		return
	}

	if strings.Compare(msg, ep.Exp[0]) != 0 {
		fmt.Printf("expected %q, got %q\n", ep.Exp[0], msg)
		ep.Failed = true
	}
	ep.Exp = ep.Exp[1:]
}

// MockTerm is a Console that remembers every line written to it.
// It may be written from a running program while a test reads it.
type MockTerm struct {
	ExpMsg *Expector
	Quiet  bool // don't echo to stdout

	mu    sync.Mutex
	lines []string
	seen  chan struct{}
}

// NewMockTerm returns a ready to use terminal
func NewMockTerm() *MockTerm {
	return &MockTerm{Quiet: true, seen: make(chan struct{}, 1024)}
}

// Println records a line
func (mt *MockTerm) Println(msg string) {
	if !mt.Quiet {
		fmt.Println(msg)
	}

	mt.mu.Lock()
	mt.lines = append(mt.lines, msg)
	if mt.ExpMsg != nil {
		mt.ExpMsg.chkExpectations(msg)
	}
	mt.mu.Unlock()

	if mt.seen != nil {
		select {
		case mt.seen <- struct{}{}:
		default:
		}
	}
}

// Lines returns a copy of everything printed so far
func (mt *MockTerm) Lines() []string {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if len(mt.lines) == 0 {
		return nil
	}
	return append([]string{}, mt.lines...)
}

// Text is everything printed, newline terminated
func (mt *MockTerm) Text() string {
	lines := mt.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Seen delivers a value each time a line is printed
func (mt *MockTerm) Seen() <-chan struct{} {
	return mt.seen
}

// Clear forgets the lines printed so far
func (mt *MockTerm) Clear() {
	mt.mu.Lock()
	mt.lines = nil
	mt.mu.Unlock()
}
