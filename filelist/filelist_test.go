package filelist

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/navionguy/nextbasic/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDir = []DirEntry{
	{Name: "short.bas", Kind: "txt", Size: 1},
	{Name: "test.bas", Kind: "txt", Size: 2},
	{Name: "alongername.bas", Kind: "txt", Size: 1},
	{Name: "subdir", Subdir: true},
	{Name: "aamenu.bas", Kind: "txt", Size: 3},
	{Name: "asubdir", Subdir: true},
}

const marshaledFiles = `[{"name":"short.bas","isdir":false,"type":"txt","size":1},{"name":"test.bas","isdir":false,"type":"txt","size":2},{"name":"alongername.bas","isdir":false,"type":"txt","size":1},{"name":"subdir","isdir":true,"size":0},{"name":"aamenu.bas","isdir":false,"type":"txt","size":3},{"name":"asubdir","isdir":true,"size":0}]`

const buildFiles = `[{"name":"test.bas","isdir":false},{"name":"alongername.bas","isdir":true}]`

func Test_Build(t *testing.T) {
	fl := NewFileList()

	err := fl.Build(bufio.NewReader(bytes.NewReader(nil)))

	assert.Error(t, err, "Test_Build didn't catch invalid json")
}

func TestBuildError(t *testing.T) {
	rdr := bufio.NewReader(mocks.NewReader(nil))
	fl := NewFileList()

	err := fl.Build(rdr)
	assert.Error(t, err, "TestBuildError didn't get an error")

	rdr = bufio.NewReader(mocks.NewReader([]byte(`{"entry":}`)))

	err = fl.Build(rdr)
	assert.Error(t, err, "TestBuildError with invalid json didn't get an error")

	rdr = bufio.NewReader(mocks.NewReader([]byte(`{"entry":1}`)))

	err = fl.Build(rdr)
	assert.Error(t, err, "TestBuildError with an object didn't get an error")
}

func Test_FilesJSON(t *testing.T) {
	fl := NewFileList()
	assert.NotNil(t, fl, "Test_FilesJSON fl was nil")

	assert.Equal(t, "[]", string(fl.JSON()))

	fl.loadTestDir()
	files := fl.JSON()
	assert.Equal(t, marshaledFiles, string(files))

	err := fl.Build(bufio.NewReader(bytes.NewReader([]byte(buildFiles))))
	require.NoError(t, err)
	require.Len(t, fl.Files, 2, "Test_FilesJSON Build sent back %d elements, expected 2", len(fl.Files))
	assert.Equal(t, "alongername.bas", fl.Files[0].Name, "Build didn't sort")
}

func Test_FileSort(t *testing.T) {
	sorted := []string{"asubdir", "subdir", "aamenu.bas", "alongername.bas", "short.bas", "test.bas"}
	fl := NewFileList()
	fl.loadTestDir()
	fs := &fileSorter{list: fl}

	assert.Len(t, fl.Files, fs.Len(), "Test_FileSort fs.Len() returned %d", fs.Len())

	fl.Sort()

	assert.True(t, fs.list.Files[0].Subdir, "Subdirectory didn't float to the start of the list.")

	for i, name := range sorted {
		assert.Equal(t, name, fs.list.Files[i].Name)
	}
}

func Test_Counts(t *testing.T) {
	fl := NewFileList()
	fl.loadTestDir()

	dirs, files := fl.Counts()
	assert.Equal(t, 2, dirs)
	assert.Equal(t, 4, files)
}

func (fl *FileList) loadTestDir() {
	for _, fn := range testDir {
		fl.AddFile(fn.Name, fn.Subdir, fn.Kind, fn.Size)
	}
}
