package fileserv

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// route names
const (
	RootRt   = "main page"
	FsRootRt = "filesystem root"
	FsRt     = "filesystem"
	FsSaveRt = "filesystem save"
	TermRt   = "terminal"
)

type fileSource struct {
	src http.FileSystem
}

// asset directories and the content type of what they hold
var assetDirs = []struct {
	dir      string
	path     string
	mimetype string
}{
	{dir: "css", path: "/css/{file}.{ext}", mimetype: "text/css"},
	{dir: "images", path: "/images/{file}.{ext}", mimetype: ""},
	{dir: "js", path: "/js/{file}.{ext}", mimetype: "application/x-javascript; charset=utf-8"},
}

// WrapFileSources builds mux routes to the web page assets,
// the css files, images and javascript the terminal page needs.
// The page itself, index.html, is served at /.
func WrapFileSources(rtr *mux.Router, assetsDir string) {
	for _, ad := range assetDirs {
		fs := &fileSource{src: http.Dir(strings.TrimRight(assetsDir, "/") + "/" + ad.dir)}
		fs.wrapSource(rtr, ad.path, ad.mimetype)
	}

	fs := &fileSource{src: http.Dir(assetsDir)}
	rtr.HandleFunc("/", func(rw http.ResponseWriter, r *http.Request) {
		fs.serveFile(rw, r, "index.html", "text/html; charset=utf-8")
	}).Name(RootRt)
}

// given a path, create a handler function that will extract the
// parts of the path and then call the source directory to work
// on the file
func (fs *fileSource) wrapSource(rtr *mux.Router, path string, mimetype string) {
	rtr.HandleFunc(path, func(rw http.ResponseWriter, r *http.Request) {
		vs := mux.Vars(r)
		file := vs["file"]
		ext := vs["ext"]

		if len(ext) > 0 {
			file = file + "." + ext
		}
		fs.serveFile(rw, r, file, mimetype)
	}).Name(path)
}

// serveFile opens up the file and sends its contents
func (fs fileSource) serveFile(w http.ResponseWriter, r *http.Request, fname string, mimetype string) {
	hfile, err := fs.Open(fname)

	if errors.Is(err, os.ErrPermission) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if err != nil {
		log.Debug().Str("file", fname).Err(err).Msg("asset not served")
		w.WriteHeader(http.StatusNotFound)
		return
	}
	defer hfile.Close()

	st, err := hfile.Stat()

	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// asset directories are never listed
	if st.IsDir() {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	buf, err := io.ReadAll(hfile)

	if err != nil || (len(buf) == 0 && st.Size() > 0) {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if len(mimetype) > 0 {
		w.Header().Set("Content-Type", mimetype)
	}
	w.Write(buf)
}

// Open is a wrapper around the Open method of the embedded FileSystem
// that refuses dot files
func (fs fileSource) Open(name string) (hFile http.File, err error) {
	if containsDotFile(name) { // If dot file, return 403 response
		return nil, os.ErrPermission
	}

	return fs.src.Open(name)
}

// containsDotFile reports whether name contains a path element starting with a period.
// The name is assumed to be a delimited by forward slashes, as guaranteed
// by the http.FileSystem interface.
func containsDotFile(name string) bool {
	parts := strings.Split(name, "/")
	for _, part := range parts {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
