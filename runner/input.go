package runner

import (
	"context"
	"sync/atomic"

	"github.com/navionguy/nextbasic/object"
)

// InputQueue is an InputSource fed by the host.  An INPUT blocks in
// ReadLine until the host calls Provide with the line the user typed.
type InputQueue struct {
	echo    object.Console
	lines   chan string
	waiting atomic.Bool
}

// NewInputQueue builds a queue, prompts are written to echo when it isn't nil
func NewInputQueue(echo object.Console) *InputQueue {
	return &InputQueue{echo: echo, lines: make(chan string, 1)}
}

// ReadLine shows the prompt and waits for Provide or for ctx to end
func (q *InputQueue) ReadLine(ctx context.Context, prompt string) (string, error) {
	// discard anything left from an abandoned INPUT
	select {
	case <-q.lines:
	default:
	}

	if len(prompt) > 0 && q.echo != nil {
		q.echo.Println(prompt)
	}

	q.waiting.Store(true)
	defer q.waiting.Store(false)

	select {
	case line := <-q.lines:
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Provide hands a line to the waiting INPUT.
// It returns false, and drops the line, when nothing is waiting.
func (q *InputQueue) Provide(line string) bool {
	if !q.waiting.Load() {
		return false
	}

	select {
	case q.lines <- line:
		return true
	default:
		return false
	}
}

// Waiting reports whether an INPUT is suspended on this queue
func (q *InputQueue) Waiting() bool {
	return q.waiting.Load()
}
