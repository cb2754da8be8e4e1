package mocks

import (
	"os"
	"time"
)

// MockFI is the os.FileInfo of a MockFS file
type MockFI struct {
	Fname string
	Files []string
	Ftext string // the mocked file contents
}

func (mi MockFI) IsDir() bool {
	return len(mi.Files) > 1
}

func (mi MockFI) ModTime() time.Time {
	return time.Time{}
}

func (mi MockFI) Mode() os.FileMode {
	if mi.IsDir() {
		return os.ModeDir | 0o755
	}
	return 0o644
}

func (mi MockFI) Name() string {
	return mi.Fname
}

// Size is the content length, or the name length for an empty file
func (mi MockFI) Size() int64 {
	if len(mi.Ftext) > 0 {
		return int64(len(mi.Ftext))
	}
	return int64(len(mi.Fname))
}

func (mi MockFI) Sys() interface{} {
	return nil
}
