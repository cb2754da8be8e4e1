package filelist

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
)

// DirEntry holds information about one entry in a directory
type DirEntry struct {
	Name   string `json:"name"`
	Subdir bool   `json:"isdir"`
	Kind   string `json:"type,omitempty"` // node type, txt or app for files
	Size   int    `json:"size"`           // in KB, zero for directories
}

// FileList holds the array of entries
type FileList struct {
	Files []DirEntry
}

type fileSorter struct {
	list *FileList
}

// NewFileList builds a new list of files in a directory
func NewFileList() *FileList {
	return &FileList{}
}

// JSON returns the file list formatted in HTML compatable JSON
func (fl *FileList) JSON() []byte {
	if len(fl.Files) == 0 {
		return []byte("[]")
	}
	res, _ := json.Marshal(fl.Files)
	return res
}

// AddFile adds an entry to the file list
func (fl *FileList) AddFile(name string, subdir bool, kind string, size int) {
	fl.Files = append(fl.Files, DirEntry{Name: name, Subdir: subdir, Kind: kind, Size: size})
}

// Sort puts directories first, then everything by name
func (fl *FileList) Sort() {
	sort.Sort(&fileSorter{list: fl})
}

// Counts returns how many directories and files are in the list
func (fl *FileList) Counts() (dirs int, files int) {
	for _, f := range fl.Files {
		if f.Subdir {
			dirs++
		} else {
			files++
		}
	}
	return dirs, files
}

// Build list takes the json form and builds a full FileList and sorts it
func (fl *FileList) Build(dir *bufio.Reader) error {
	fl.Files = fl.Files[:0]

	jsn, err := io.ReadAll(dir)

	if err != nil {
		return err
	}

	if !json.Valid(jsn) {
		return errors.New("NotDir")
	}

	err = json.Unmarshal(jsn, &fl.Files)
	if err != nil {
		return err
	}
	fl.Sort()

	return nil
}

// Len is a part of the sort.Interface
// returns the number file entries
func (fs *fileSorter) Len() int {
	return len(fs.list.Files)
}

// Swap is part of sort.Interface
// change two elements
func (fs *fileSorter) Swap(i, j int) {
	fs.list.Files[i], fs.list.Files[j] = fs.list.Files[j], fs.list.Files[i]
}

// Less is part of sort.Interface
func (fs *fileSorter) Less(i, j int) bool {
	if fs.list.Files[i].Subdir && !fs.list.Files[j].Subdir {
		return true
	}

	if !fs.list.Files[i].Subdir && fs.list.Files[j].Subdir {
		return false
	}

	return strings.Compare(fs.list.Files[i].Name, fs.list.Files[j].Name) == -1
}
