package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/navionguy/nextbasic/ast"
	"github.com/navionguy/nextbasic/config"
	"github.com/navionguy/nextbasic/object"
	"github.com/navionguy/nextbasic/runner"
	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"
)

// stdConsole prints program output on w
type stdConsole struct {
	w io.Writer
}

func (sc stdConsole) Println(line string) {
	fmt.Fprintln(sc.w, line)
}

// linerInput answers INPUT statements from the local terminal.
// Ctrl-C at the prompt breaks the program.
type linerInput struct {
	ln  *liner.State
	brk func()
}

type promptResult struct {
	text string
	err  error
}

func (li linerInput) ReadLine(ctx context.Context, prompt string) (string, error) {
	res := make(chan promptResult, 1)
	go func() {
		txt, err := li.ln.Prompt(prompt)
		res <- promptResult{text: txt, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case pr := <-res:
		if errors.Is(pr.err, liner.ErrPromptAborted) {
			li.brk()
			return "", nil
		}
		return pr.text, pr.err
	}
}

// readProgram loads a .bas file from disk
func readProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	return ast.Load(lines)
}

// breakOnSignal calls brk for every signal until done is closed.
// The returned channel closes once it has stopped watching.
func breakOnSignal(sigs <-chan os.Signal, brk func(), done <-chan struct{}) <-chan struct{} {
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		for {
			select {
			case <-sigs:
				brk()
			case <-done:
				return
			}
		}
	}()

	return stopped
}

// runLocal runs one program on this terminal, the result is the exit code
func runLocal(cfg config.Config, path string) int {
	prog, err := readProgram(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		return 1
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	rn := runner.New(runnerOptions(cfg)...)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	done := make(chan struct{})
	watching := breakOnSignal(sigs, rn.RequestBreak, done)

	var out object.Console = stdConsole{w: os.Stdout}
	res := rn.Run(context.Background(), prog, out, linerInput{ln: ln, brk: rn.RequestBreak})

	close(done)
	<-watching

	log.Debug().Str("file", path).Str("reason", res.Reason.String()).Msg("local run done")

	if res.Reason == runner.Failed {
		return 1
	}
	return 0
}
