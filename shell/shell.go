// Package shell is the command line a terminal user types into.
// It browses the virtual filesystem and runs BASIC programs.
package shell

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/navionguy/nextbasic/object"
	"github.com/navionguy/nextbasic/runner"
	"github.com/navionguy/nextbasic/settings"
	"github.com/navionguy/nextbasic/vfs"
	"github.com/rs/zerolog/log"
)

// BreakKey is the byte a terminal sends for Ctrl-C
const BreakKey = "\x03"

// Version is shown by the version command
const Version = "NextOS Terminal [v1.1.7] NextBasic 0.7.1 - 1984-2026 -"

// Clearer is implemented by consoles that can clear the screen
type Clearer interface {
	Cls()
}

// Session is one user's shell
type Session struct {
	fs    *vfs.FS
	out   object.Console
	clock func() time.Time

	mu       sync.Mutex
	settings map[string]string
	history  []string
	rn       *runner.Runner
	queue    *runner.InputQueue
	done     chan struct{} // closed when the running program finishes
	ctx      context.Context
	cancel   context.CancelFunc
}

// Option configures a Session
type Option func(*Session)

// WithRunner replaces the runner programs execute on
func WithRunner(rn *runner.Runner) Option {
	return func(s *Session) {
		s.rn = rn
	}
}

// WithClock replaces the time source for the time and clear commands
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithSetting presets one of the session settings
func WithSetting(key, value string) Option {
	return func(s *Session) {
		s.settings[key] = value
	}
}

// NewSession starts a shell on fs writing to out
func NewSession(fs *vfs.FS, out object.Console, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		fs:       fs,
		out:      out,
		clock:    time.Now,
		settings: make(map[string]string),
		rn:       runner.New(),
		ctx:      ctx,
		cancel:   cancel,
	}
	for k, v := range settings.Defaults {
		s.settings[k] = v
	}

	for _, opt := range opts {
		opt(s)
	}
	s.queue = runner.NewInputQueue(out)

	return s
}

// Setting returns one of the session settings
func (s *Session) Setting(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings[key]
}

func (s *Session) setSetting(key, value string) {
	s.mu.Lock()
	s.settings[key] = value
	s.mu.Unlock()
}

// Cwd is the current directory
func (s *Session) Cwd() string {
	return s.Setting(settings.Cwd)
}

// Prompt is what the terminal shows before a command
func (s *Session) Prompt() string {
	base := "/" + s.Setting(settings.User)
	cwd := strings.Trim(s.Cwd(), "/")

	if len(cwd) == 0 {
		return base + "/>: "
	}
	return base + "/" + cwd + "/>: "
}

// History returns the commands typed so far
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string{}, s.history...)
}

// Running is true while a program is executing
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.done != nil
}

// WaitingForInput is true while a program is stopped at an INPUT
func (s *Session) WaitingForInput() bool {
	return s.queue.Waiting()
}

// Wait blocks until the running program, if any, finishes
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Close stops any running program and waits for it
func (s *Session) Close() {
	s.cancel()
	s.Wait()
}

// Handle takes one line typed at the terminal
func (s *Session) Handle(line string) {
	if line == BreakKey {
		s.requestBreak()
		return
	}

	// an INPUT gets the line exactly as typed
	if s.queue.Provide(line) {
		return
	}

	raw := strings.TrimSpace(line)

	if s.Running() {
		switch strings.ToLower(raw) {
		case "break":
			s.requestBreak()
		case "stop":
			s.stopProgram()
		default:
			s.out.Println("Program running (Ctrl-C to break)")
		}
		return
	}

	if len(raw) == 0 {
		return
	}

	s.mu.Lock()
	s.history = append(s.history, raw)
	s.mu.Unlock()

	s.execute(raw)
}

// Banner is printed when the terminal connects
func (s *Session) Banner() {
	s.out.Println(Version)
	s.out.Println(s.clock().Format(dateFormat))
	s.out.Println("SYSTEM READY")
	s.out.Println("")
}

func (s *Session) requestBreak() {
	if s.Running() {
		s.rn.RequestBreak()
	}
}

func (s *Session) stopProgram() {
	if !s.Running() {
		s.out.Println("No program running")
		return
	}

	s.rn.Stop()
	s.Wait()
	s.out.Println("")
	s.out.Println("[Program stopped]")
}

// startProgram runs the program in the background, the session stays responsive
func (s *Session) startProgram(name string, lines []string) {
	prog, err := loadProgram(lines)
	if err != nil {
		s.out.Println("Error: " + err.Error())
		s.out.Println("")
		return
	}

	s.out.Println("")

	results, err := s.rn.Start(s.ctx, prog, s.out, s.queue)
	if err != nil {
		s.out.Println("Error: " + err.Error())
		s.out.Println("")
		return
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.done = done
	s.mu.Unlock()

	log.Info().Str("program", name).Msg("run")

	go func() {
		defer close(done)

		res := <-results

		s.mu.Lock()
		s.done = nil
		s.mu.Unlock()

		if res.Reason != runner.Stopped {
			s.out.Println("")
		}
	}()
}
