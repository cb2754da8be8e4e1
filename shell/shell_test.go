package shell

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/navionguy/nextbasic/mocks"
	"github.com/navionguy/nextbasic/runner"
	"github.com/navionguy/nextbasic/settings"
	"github.com/navionguy/nextbasic/vfs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keep the run logs out of test output
func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

const testTree = `{
  "type": "dir",
  "children": {
    "readme.txt": {"type": "txt", "content": "line one\nline two\n"},
    "editor": {"type": "app", "url": "https://example.com/edit"},
    "programs": {
      "type": "dir",
      "children": {
        "hello.bas": {"type": "txt", "content": "10 PRINT \"Hello\"\r\n20 PRINT \"World\"\r\n"},
        "ask.bas": {"type": "txt", "content": "10 INPUT \"Name\"; N\n20 PRINT \"Hi \"; N"},
        "loop.bas": {"type": "txt", "content": "10 GOTO 10"},
        "dup.bas": {"type": "txt", "content": "10 END\n10 END"},
        "oops.bas": {"type": "txt", "content": "10 PRINT Y"}
      }
    }
  }
}`

var testTime = time.Date(1984, time.March, 5, 14, 7, 9, 0, time.UTC)

type clsTerm struct {
	*mocks.MockTerm
	cleared bool
}

func (ct *clsTerm) Cls() {
	ct.cleared = true
}

func testSession(t *testing.T) (*Session, *mocks.MockTerm) {
	fs, err := vfs.Load(strings.NewReader(testTree))
	require.NoError(t, err)

	mt := mocks.NewMockTerm()
	s := NewSession(fs, mt,
		WithRunner(runner.New(runner.WithThrottle(0))),
		WithClock(func() time.Time { return testTime }),
	)
	t.Cleanup(s.Close)

	return s, mt
}

func Test_Commands(t *testing.T) {
	tests := []struct {
		inp string
		exp []string
	}{
		{inp: "pwd", exp: []string{"/"}},
		{inp: "time", exp: []string{" 3/5/1984, 2:07:09 PM", ""}},
		{inp: "CLOCK", exp: []string{" 3/5/1984, 2:07:09 PM", ""}},
		{inp: "version", exp: []string{Version, ""}},
		{inp: "ver", exp: []string{Version, ""}},
		{inp: "cat readme.txt", exp: []string{"line one", "line two"}},
		{inp: "cat nope.txt", exp: []string{"cat: 'nope.txt': No such file"}},
		{inp: "cat programs", exp: []string{"cat: 'programs': Not a text file"}},
		{inp: "cat", exp: []string{"Usage: cat <file>"}},
		{inp: "frobnicate", exp: []string{"Command not found: frobnicate", ""}},
		{inp: "editor", exp: []string{"Launching editor...", "https://example.com/edit", "done", ""}},
		{inp: "run", exp: []string{"Usage: run <file.bas>", ""}},
		{inp: "run nope.bas", exp: []string{"run: 'nope.bas': No such file", ""}},
		{inp: "run programs", exp: []string{"run: 'programs': Not a text file", ""}},
		{inp: "run editor", exp: []string{"run: 'editor': Not a text file", ""}},
		{inp: "break", exp: []string{"No program running"}},
		{inp: "stop", exp: []string{"No program running"}},
		{inp: "cd nowhere", exp: []string{"cd: no such directory"}},
		{inp: "cd readme.txt", exp: []string{"cd: no such directory"}},
		{inp: "help pwd", exp: []string{"Usage: pwd", "", "Description:", "  Print the current directory.", ""}},
		{inp: "pwd --help", exp: []string{"Usage: pwd", "", "Description:", "  Print the current directory.", ""}},
		{inp: "help xyzzy", exp: []string{"No help for xyzzy", ""}},
		{inp: "theme nosuch", exp: []string{"", "Theme 'nosuch' not found.", "Use 'theme' to see available themes.", ""}},
		{inp: "theme Amber", exp: []string{"", "Theme changed to: Amber", ""}},
		{inp: "   ", exp: nil},
	}

	for _, tt := range tests {
		s, mt := testSession(t)

		s.Handle(tt.inp)

		assert.Equal(t, tt.exp, mt.Lines(), tt.inp)
	}
}

func Test_Ls(t *testing.T) {
	s, mt := testSession(t)

	s.Handle("ls")

	exp := []string{
		"",
		"   " + pad(".") + "[*]",
		"   " + pad("..") + "[*]",
		"   " + pad("programs") + "[dir]",
		"   " + pad("editor") + "[prg] 0 KB",
		"   " + pad("readme.txt") + "[prg] 1 KB",
		"",
		"   1 dir, 2 file",
	}
	assert.Equal(t, exp, mt.Lines())
}

func Test_CdAndPrompt(t *testing.T) {
	s, mt := testSession(t)
	assert.Equal(t, "/guest/>: ", s.Prompt())

	s.Handle("cd programs")
	assert.Equal(t, "/programs", s.Cwd())
	assert.Equal(t, "/guest/programs/>: ", s.Prompt())

	s.Handle("cat hello.bas")
	assert.Equal(t, []string{`10 PRINT "Hello"`, `20 PRINT "World"`}, mt.Lines())

	s.Handle("cd ..")
	assert.Equal(t, "/", s.Cwd())

	s.Handle("cd ..")
	assert.Equal(t, "/", s.Cwd())

	s.Handle("cd /programs")
	s.Handle("cd")
	assert.Equal(t, "/programs", s.Cwd(), "cd with no argument stays put")

	assert.Equal(t, []string{"cd programs", "cat hello.bas", "cd ..", "cd ..", "cd /programs", "cd"}, s.History())
}

func Test_Theme(t *testing.T) {
	s, mt := testSession(t)
	assert.Equal(t, "dracula", s.Setting(settings.Theme))

	s.Handle("theme")
	lines := mt.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Current theme: Dracula", lines[1])
	assert.Contains(t, lines, "  amber        - Amber")
	assert.Contains(t, lines, "Modern Themes:")
	assert.Equal(t, "Usage: theme <name>", lines[len(lines)-2])

	s.Handle("theme classic")
	assert.Equal(t, "classic", s.Setting(settings.Theme))
}

func Test_Clear(t *testing.T) {
	fs := vfs.New()
	ct := &clsTerm{MockTerm: mocks.NewMockTerm()}
	s := NewSession(fs, ct, WithClock(func() time.Time { return testTime }))

	s.Handle("cls")

	assert.True(t, ct.cleared)
	assert.Equal(t, []string{"3/5/1984, 2:07:09 PM", "SYSTEM READY", ""}, ct.Lines())
}

func Test_Help(t *testing.T) {
	s, mt := testSession(t)

	s.Handle("help")

	lines := mt.Lines()
	assert.Equal(t, summary[0], lines[0])
	assert.Len(t, lines, len(summary)+1)
}

func Test_RunProgram(t *testing.T) {
	s, mt := testSession(t)

	s.Handle("run programs/hello.bas")
	s.Wait()

	assert.Equal(t, []string{"", "Hello", "World", ""}, mt.Lines())
	assert.False(t, s.Running())
}

func Test_RunErrors(t *testing.T) {
	tests := []struct {
		inp string
		exp []string
	}{
		{inp: "run dup.bas", exp: []string{"Error: Duplicate line number: 10", ""}},
		{inp: "run oops.bas", exp: []string{"", "Error at line 10: Undefined variable: Y", ""}},
	}

	for _, tt := range tests {
		s, mt := testSession(t)
		s.Handle("cd programs")

		s.Handle(tt.inp)
		s.Wait()

		assert.Equal(t, tt.exp, mt.Lines(), tt.inp)
	}
}

func Test_RunWithInput(t *testing.T) {
	s, mt := testSession(t)

	s.Handle("run /programs/ask.bas")
	assert.Eventually(t, s.WaitingForInput, time.Second, time.Millisecond)

	s.Handle("  Ada ")
	s.Wait()

	assert.Equal(t, []string{"", "Name", "Hi Ada", ""}, mt.Lines())
	assert.NotContains(t, s.History(), "  Ada ", "input for the program isn't a command")
}

func Test_BreakKey(t *testing.T) {
	s, mt := testSession(t)

	s.Handle("run programs/loop.bas")
	require.True(t, s.Running())

	s.Handle("ls")
	s.Handle(BreakKey)
	s.Wait()

	lines := mt.Lines()
	assert.Equal(t, []string{"", "Program running (Ctrl-C to break)", "[BREAK]", ""}, lines)
	assert.False(t, s.Running())
}

func Test_BreakCommand(t *testing.T) {
	s, mt := testSession(t)

	s.Handle("run programs/loop.bas")
	s.Handle("BREAK")
	s.Wait()

	assert.Equal(t, []string{"", "[BREAK]", ""}, mt.Lines())
}

func Test_StopCommand(t *testing.T) {
	s, mt := testSession(t)

	s.Handle("run /programs/ask.bas")
	assert.Eventually(t, s.WaitingForInput, time.Second, time.Millisecond)

	// while waiting, lines go to the program, so stop through the runner path
	s.stopProgram()

	assert.False(t, s.Running())
	assert.Equal(t, []string{"", "Name", "", "[Program stopped]"}, mt.Lines())
}

func Test_StopRunning(t *testing.T) {
	s, mt := testSession(t)

	s.Handle("run programs/loop.bas")
	s.Handle("stop")

	assert.False(t, s.Running())
	assert.Equal(t, []string{"", "", "[Program stopped]"}, mt.Lines())
}

func Test_Banner(t *testing.T) {
	s, mt := testSession(t)

	s.Banner()

	assert.Equal(t, []string{Version, "3/5/1984, 2:07:09 PM", "SYSTEM READY", ""}, mt.Lines())
}
