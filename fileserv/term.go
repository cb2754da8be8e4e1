package fileserv

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/navionguy/nextbasic/runner"
	"github.com/navionguy/nextbasic/shell"
	"github.com/navionguy/nextbasic/vfs"
	"github.com/rs/zerolog/log"
)

// ClearScreen is the frame sent when the terminal should be wiped
const ClearScreen = "\x1b[2J\x1b[H"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WrapTerminal serves the browser terminal at /term.  Every
// connection gets its own shell session, and each runs its programs
// on a runner built with opts.
func WrapTerminal(rtr *mux.Router, fs *vfs.FS, opts ...runner.Option) {
	rtr.HandleFunc("/term", func(rw http.ResponseWriter, r *http.Request) {
		serveTerminal(rw, r, fs, opts)
	}).Name(TermRt)
}

func serveTerminal(w http.ResponseWriter, r *http.Request, fs *vfs.FS, opts []runner.Option) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already answered the request
		log.Error().Err(err).Str("remote", r.RemoteAddr).Msg("terminal upgrade failed")
		return
	}
	defer conn.Close()

	log.Info().Str("remote", r.RemoteAddr).Msg("terminal connected")

	con := &wsConsole{conn: conn}
	sess := shell.NewSession(fs, con, shell.WithRunner(runner.New(opts...)))
	defer sess.Close()

	sess.Banner()

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error().Err(err).Str("remote", r.RemoteAddr).Msg("terminal read failed")
			}
			log.Info().Str("remote", r.RemoteAddr).Msg("terminal disconnected")
			return
		}

		if mt != websocket.TextMessage {
			continue
		}

		sess.Handle(strings.TrimRight(string(msg), "\r\n"))
	}
}

// wsConsole sends each output line as one text frame.
// Lines come from the shell and from a running program at once.
type wsConsole struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	broken bool
}

func (wc *wsConsole) Println(line string) {
	wc.send(line)
}

func (wc *wsConsole) Cls() {
	wc.send(ClearScreen)
}

func (wc *wsConsole) send(msg string) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	if wc.broken {
		return
	}

	if err := wc.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		log.Error().Err(err).Msg("terminal write failed")
		wc.broken = true
	}
}
