package fileserv

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/navionguy/nextbasic/berrors"
	"github.com/navionguy/nextbasic/vfs"
	"github.com/rs/zerolog/log"
)

// largest file a PUT may store
const maxUpload = 1 << 20

// WrapFilesystem routes /fs/... to the virtual filesystem.
// Directories come back as a JSON listing, text files as plain
// text and app links as JSON holding their url.  A PUT stores
// the request body as a text file, the way the editor saves.
func WrapFilesystem(rtr *mux.Router, fs *vfs.FS) {
	rtr.HandleFunc("/fs", func(rw http.ResponseWriter, r *http.Request) {
		serveNode(rw, fs, "/")
	}).Methods(http.MethodGet).Name(FsRootRt)

	rtr.HandleFunc("/fs/{path:.*}", func(rw http.ResponseWriter, r *http.Request) {
		serveNode(rw, fs, vfs.Normalize("/", mux.Vars(r)["path"]))
	}).Methods(http.MethodGet).Name(FsRt)

	rtr.HandleFunc("/fs/{path:.*}", func(rw http.ResponseWriter, r *http.Request) {
		storeFile(rw, r, fs, vfs.Normalize("/", mux.Vars(r)["path"]))
	}).Methods(http.MethodPut).Name(FsSaveRt)
}

func storeFile(w http.ResponseWriter, r *http.Request, fs *vfs.FS, p string) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpload+1))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if len(body) > maxUpload {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}

	err = fs.WriteFile(p, string(body))
	switch {
	case err == nil:
		log.Info().Str("path", p).Int("bytes", len(body)).Msg("file saved")
		w.WriteHeader(http.StatusNoContent)
	case berrors.Is(err, berrors.NotADirectory):
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusConflict)
	}
}

func serveNode(w http.ResponseWriter, fs *vfs.FS, p string) {
	node, ok := fs.Lookup(p)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch node.Type {
	case vfs.DirNode:
		fl, err := fs.List(p)
		if err != nil {
			log.Error().Err(err).Str("path", p).Msg("listing failed")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(fl.JSON())

	case vfs.TxtNode:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(node.Content))

	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"type": node.Type, "url": node.URL})
	}
}
