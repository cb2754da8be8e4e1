package mocks

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// MockFS is an http.FileSystem holding one file, it is also the
// http.File that Open hands back
type MockFS struct {
	File       string   // filename
	Content    string   // text in the file
	StatErr    bool     // return an error when stat is called
	ReadErr    *bool    // when true reads hit EOF at once, set once the content is read
	OpenAlways bool     // return a file handle no matter what
	Names      []string // entries, more than one makes the file a directory
}

func (mf MockFS) Open(file string) (http.File, error) {
	if (mf.File != file) && !mf.OpenAlways {
		return nil, fmt.Errorf("got %s, wanted %s: %w", file, mf.File, os.ErrNotExist)
	}
	return mf, nil
}

// Read hands over the whole content in one call
func (mf MockFS) Read(p []byte) (int, error) {
	if mf.ReadErr == nil || *mf.ReadErr {
		return 0, io.EOF
	}

	n := copy(p, mf.Content)
	if n == len(mf.Content) {
		*mf.ReadErr = true
	}
	return n, nil
}

func (mf MockFS) Readdir(n int) ([]os.FileInfo, error) {
	var mi []os.FileInfo
	for _, nm := range mf.Names {
		mi = append(mi, MockFI{Fname: nm})
	}
	return mi, nil
}

func (mf MockFS) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekEnd {
		return int64(len(mf.Content)), nil
	}
	return 0, nil
}

func (mf MockFS) Stat() (os.FileInfo, error) {
	if mf.StatErr {
		return nil, errors.New("a faked error")
	}

	return MockFI{Fname: mf.File, Ftext: mf.Content, Files: mf.Names}, nil
}

func (mf MockFS) Close() error {
	return nil
}
