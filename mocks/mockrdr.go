package mocks

import (
	"bytes"
	"errors"
)

// MockRdr reads from a byte slice, or fails when the slice is empty
type MockRdr struct {
	data []byte
	rdr  *bytes.Reader
}

func NewReader(b []byte) *MockRdr {
	rdr := MockRdr{data: b}

	if len(b) > 0 {
		rdr.rdr = bytes.NewReader(rdr.data)
	}

	return &rdr
}

func (rdr *MockRdr) Read(p []byte) (n int, err error) {
	if len(rdr.data) == 0 {
		return 0, errors.New("i live to fail")
	}

	return rdr.rdr.Read(p)
}

// MockWriter fails every write
type MockWriter struct{}

func (MockWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}
