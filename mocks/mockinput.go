package mocks

import (
	"context"
	"errors"
	"sync"
)

// MockInput answers INPUT statements from a script of lines
type MockInput struct {
	Lines   []string // answers, handed out in order
	Err     error    // returned once the answers run out
	Prompts []string // every prompt asked for

	mu sync.Mutex
}

// ReadLine returns the next scripted answer
func (mi *MockInput) ReadLine(ctx context.Context, prompt string) (string, error) {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	mi.Prompts = append(mi.Prompts, prompt)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if len(mi.Lines) == 0 {
		if mi.Err != nil {
			return "", mi.Err
		}
		return "", errors.New("input exhausted")
	}

	rc := mi.Lines[0]
	mi.Lines = mi.Lines[1:]
	return rc, nil
}
