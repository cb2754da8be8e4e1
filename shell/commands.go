package shell

import (
	"fmt"
	"strings"

	"github.com/navionguy/nextbasic/ast"
	"github.com/navionguy/nextbasic/berrors"
	"github.com/navionguy/nextbasic/settings"
	"github.com/navionguy/nextbasic/vfs"
)

const (
	dateFormat = "1/2/2006, 3:04:05 PM"
	nameWidth  = 40
)

type command func(s *Session, args []string)

var commands = map[string]command{
	"help":    cmdHelp,
	"ls":      cmdLs,
	"cd":      cmdCd,
	"pwd":     cmdPwd,
	"cat":     cmdCat,
	"run":     cmdRun,
	"break":   func(s *Session, args []string) { s.out.Println("No program running") },
	"stop":    func(s *Session, args []string) { s.stopProgram() },
	"theme":   cmdTheme,
	"version": cmdVersion,
	"ver":     cmdVersion,
	"clear":   cmdClear,
	"cls":     cmdClear,
	"time":    cmdTime,
	"clock":   cmdTime,
}

// execute dispatches one command line
func (s *Session) execute(raw string) {
	parts := strings.Fields(raw)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	if hasHelpFlag(args) {
		showHelp(s, cmd)
		return
	}

	if fn, ok := commands[cmd]; ok {
		fn(s, args)
		return
	}

	tryRunApp(s, parts[0])
}

func hasHelpFlag(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

// splits a file into program lines
func loadProgram(lines []string) (*ast.Program, error) {
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	return ast.Load(lines)
}

func cmdLs(s *Session, args []string) {
	fl, err := s.fs.List(s.Cwd())
	if err != nil {
		s.out.Println("ls: not a directory")
		return
	}

	s.out.Println("")
	s.out.Println("   " + pad(".") + "[*]")
	s.out.Println("   " + pad("..") + "[*]")

	for _, f := range fl.Files {
		if f.Subdir {
			s.out.Println("   " + pad(f.Name) + "[dir]")
			continue
		}
		s.out.Println(fmt.Sprintf("   %s[prg] %d KB", pad(f.Name), f.Size))
	}

	dirs, files := fl.Counts()
	s.out.Println("")
	s.out.Println(fmt.Sprintf("   %d dir, %d file", dirs, files))
}

func pad(name string) string {
	if len(name) >= nameWidth {
		return name
	}
	return name + strings.Repeat(" ", nameWidth-len(name))
}

func cmdCd(s *Session, args []string) {
	if len(args) == 0 {
		return
	}

	target := vfs.Normalize(s.Cwd(), args[0])
	node, ok := s.fs.Lookup(target)
	if !ok || !node.IsDir() {
		s.out.Println("cd: no such directory")
		return
	}

	s.setSetting(settings.Cwd, target)
}

func cmdPwd(s *Session, args []string) {
	s.out.Println(s.Cwd())
}

func cmdCat(s *Session, args []string) {
	if len(args) == 0 {
		s.out.Println("Usage: cat <file>")
		return
	}

	txt, err := s.fs.ReadFile(vfs.Normalize(s.Cwd(), args[0]))
	if err != nil {
		s.out.Println(fileError("cat", args[0], err))
		return
	}

	for _, line := range strings.Split(strings.TrimRight(txt, "\n"), "\n") {
		s.out.Println(strings.TrimRight(line, "\r"))
	}
}

func cmdRun(s *Session, args []string) {
	if len(args) == 0 {
		s.out.Println("Usage: run <file.bas>")
		s.out.Println("")
		return
	}

	txt, err := s.fs.ReadFile(vfs.Normalize(s.Cwd(), args[0]))
	if err != nil {
		s.out.Println(fileError("run", args[0], err))
		s.out.Println("")
		return
	}

	s.startProgram(args[0], strings.Split(txt, "\n"))
}

// fileError reports a vfs failure the way the shell words it
func fileError(cmd string, name string, err error) string {
	switch berrors.Code(err) {
	case berrors.FileNotFound, berrors.NotATextFile:
		return fmt.Sprintf("%s: '%s': %s", cmd, name, berrors.TextForError(berrors.Code(err)))
	}
	return fmt.Sprintf("%s: '%s': %s", cmd, name, err.Error())
}

func cmdTheme(s *Session, args []string) {
	if len(args) == 0 {
		cur, _ := settings.LookupTheme(s.Setting(settings.Theme))

		s.out.Println("")
		s.out.Println("Current theme: " + cur.Name)
		s.out.Println("")
		for _, cat := range settings.Categories {
			s.out.Println(cat + ":")
			for _, id := range settings.ThemesIn(cat) {
				s.out.Println(fmt.Sprintf("  %-12s - %s", id, settings.Themes[id].Name))
			}
			s.out.Println("")
		}
		s.out.Println("Usage: theme <name>")
		s.out.Println("")
		return
	}

	th, ok := settings.LookupTheme(args[0])
	s.out.Println("")
	if !ok {
		s.out.Println(fmt.Sprintf("Theme '%s' not found.", strings.ToLower(args[0])))
		s.out.Println("Use 'theme' to see available themes.")
		s.out.Println("")
		return
	}

	s.setSetting(settings.Theme, th.ID)
	s.out.Println("Theme changed to: " + th.Name)
	s.out.Println("")
}

func cmdVersion(s *Session, args []string) {
	s.out.Println(Version)
	s.out.Println("")
}

func cmdClear(s *Session, args []string) {
	if cl, ok := s.out.(Clearer); ok {
		cl.Cls()
	}

	s.out.Println(s.clock().Format(dateFormat))
	s.out.Println("SYSTEM READY")
	s.out.Println("")
}

func cmdTime(s *Session, args []string) {
	s.out.Println(" " + s.clock().Format(dateFormat))
	s.out.Println("")
}

// anything else may be the name of an app in the current directory
func tryRunApp(s *Session, name string) {
	node, ok := s.fs.Lookup(vfs.Normalize(s.Cwd(), name))
	if !ok || node.Type != vfs.AppNode {
		s.out.Println("Command not found: " + name)
		s.out.Println("")
		return
	}

	s.out.Println("Launching " + name + "...")
	s.out.Println(node.URL)
	s.out.Println("done")
	s.out.Println("")
}
