// Package runner drives a loaded program from its first statement
// until it ends, fails, or the host halts it.
package runner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/navionguy/nextbasic/ast"
	"github.com/navionguy/nextbasic/berrors"
	"github.com/navionguy/nextbasic/evaluator"
	"github.com/navionguy/nextbasic/object"
	"github.com/rs/zerolog/log"
)

// DefaultThrottle paces execution so output appears a line at a time
const DefaultThrottle = 200 * time.Millisecond

// Reason a run came to a halt
type Reason int

const (
	Completed Reason = iota // ran off the end of the program
	Ended                   // executed an END
	Broken                  // break was requested
	Stopped                 // host called Stop
	Failed                  // a statement raised an error
)

func (r Reason) String() string {
	switch r {
	case Completed:
		return "completed"
	case Ended:
		return "ended"
	case Broken:
		return "break"
	case Stopped:
		return "stopped"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result describes how a run finished
type Result struct {
	Reason Reason
	Line   int   // line executing when the run halted, zero if none
	Err    error // set when Reason is Failed
}

// State of the runner as seen by the host
type State int32

const (
	Idle State = iota
	Running
	WaitingForInput
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForInput:
		return "waiting for input"
	}
	return "idle"
}

// Runner owns one run of a program at a time
type Runner struct {
	throttle time.Duration
	seed     int64

	state    atomic.Int32
	brkFlag  atomic.Bool
	stopFlag atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
}

// Option configures a Runner
type Option func(*Runner)

// WithThrottle sets the pause after each statement, zero runs flat out
func WithThrottle(d time.Duration) Option {
	return func(r *Runner) {
		r.throttle = d
	}
}

// WithSeed fixes the RND sequence, zero seeds from the clock
func WithSeed(seed int64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

// New builds a Runner
func New(opts ...Option) *Runner {
	r := &Runner{throttle: DefaultThrottle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State reports what the runner is doing right now
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Running is true from Start until the Result is delivered
func (r *Runner) Running() bool {
	return r.State() != Idle
}

// RequestBreak asks the run to halt before its next statement.
// It is safe to call from any goroutine.
func (r *Runner) RequestBreak() {
	r.brkFlag.Store(true)
}

// Stop halts the run at once, abandoning any pending INPUT.
// Unlike a break, nothing is printed.
func (r *Runner) Stop() {
	r.stopFlag.Store(true)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// Run executes prog, sending output to out and reading INPUT from in.
// It returns once the program halts for any reason.
func (r *Runner) Run(ctx context.Context, prog *ast.Program, out object.Console, in object.InputSource) Result {
	results, err := r.Start(ctx, prog, out, in)
	if err != nil {
		return Result{Reason: Failed, Err: err}
	}
	return <-results
}

// Start begins executing prog in the background.  The runner counts
// as running as soon as Start returns, so a break or stop requested
// straight afterwards is not lost.  The Result is delivered on the
// returned channel.
func (r *Runner) Start(ctx context.Context, prog *ast.Program, out object.Console, in object.InputSource) (<-chan Result, error) {
	if !r.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return nil, berrors.Std(berrors.AlreadyRunning)
	}

	r.brkFlag.Store(false)
	r.stopFlag.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	results := make(chan Result, 1)

	go func() {
		log.Info().Int("statements", prog.Len()).Msg("program starting")
		res := r.loop(ctx, prog, out, in)

		ev := log.Info()
		if res.Err != nil {
			ev = ev.Err(res.Err)
		}
		ev.Str("reason", res.Reason.String()).Int("line", res.Line).Msg("program halted")

		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
		cancel()

		r.state.Store(int32(Idle))
		results <- res
	}()

	return results, nil
}

func (r *Runner) loop(ctx context.Context, prog *ast.Program, out object.Console, in object.InputSource) Result {
	env := object.NewEnvironment(r.seed)
	code := prog.StatementIter()
	line := 0

	for {
		if r.stopFlag.Load() || ctx.Err() != nil {
			return Result{Reason: Stopped, Line: line}
		}

		if r.brkFlag.Load() {
			out.Println("[BREAK]")
			return Result{Reason: Broken, Line: line}
		}

		stmt, ok := code.Value()
		if !ok {
			return Result{Reason: Completed, Line: line}
		}
		line = stmt.LineNum

		log.Trace().Int("line", line).Int("pc", code.Index()).Str("src", stmt.Source).Msg("step")

		nx, err := evaluator.Execute(stmt, code, env, out)
		if err != nil {
			return r.fail(out, line, err)
		}

		switch nx.Action {
		case evaluator.Continue:
			code.Next()

		case evaluator.Jump:
			if !code.Jump(nx.Line) {
				return r.fail(out, line, berrors.New(berrors.GotoTargetMissing, "%d", nx.Line))
			}
			log.Trace().Int("from", line).Int("to", nx.Line).Msg("jump")

		case evaluator.Resume:
			code.JumpIndex(nx.Index)
			log.Trace().Int("from", line).Int("to", code.CurLine()).Msg("resume")

		case evaluator.Halt:
			return Result{Reason: Ended, Line: line}

		case evaluator.AwaitInput:
			txt, err := r.readInput(ctx, in, nx.Prompt)
			if err != nil {
				if r.stopFlag.Load() || ctx.Err() != nil {
					return Result{Reason: Stopped, Line: line}
				}
				return r.fail(out, line, err)
			}
			evaluator.CompleteInput(nx.Var, txt, env)
			code.Next()
		}

		if !r.pause(ctx) {
			return Result{Reason: Stopped, Line: line}
		}
	}
}

func (r *Runner) readInput(ctx context.Context, in object.InputSource, prompt string) (string, error) {
	r.state.Store(int32(WaitingForInput))
	defer r.state.Store(int32(Running))

	return in.ReadLine(ctx, prompt)
}

// the one line a failed run prints
func (r *Runner) fail(out object.Console, line int, err error) Result {
	out.Println(fmt.Sprintf("Error at line %d: %s", line, err.Error()))
	return Result{Reason: Failed, Line: line, Err: err}
}

// pause waits out the throttle, false if the run was cancelled meanwhile
func (r *Runner) pause(ctx context.Context) bool {
	if r.throttle <= 0 {
		return true
	}

	tm := time.NewTimer(r.throttle)
	defer tm.Stop()

	select {
	case <-tm.C:
		return true
	case <-ctx.Done():
		return false
	}
}
