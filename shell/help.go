package shell

var summary = []string{
	" AVAILABLE COMMANDS:",
	"   <app>           launch app",
	"   cat <file>      show a file",
	"   cd <dir>        change directory",
	"   clear, cls      clear screen",
	"   clock, time     show date and time",
	"   ls              list directory",
	"   pwd             show current directory",
	"   run <file.bas>  run a BASIC program",
	"   break           interrupt the running program (Ctrl-C)",
	"   stop            end the running program",
	"   theme [name]    show or change the color theme",
	"   version, ver    show system version",
	"   help [cmd]      show help",
}

var helpTexts = map[string][]string{
	"ls": {
		"Usage: ls",
		"",
		"Description:",
		"  List directory contents.",
	},
	"cd": {
		"Usage: cd <dir>",
		"",
		"Description:",
		"  Change directory.",
		"",
		"Arguments:",
		"  dir   Path (.. /)",
		"",
		"Examples:",
		"  cd docs",
		"  cd ..",
	},
	"pwd": {
		"Usage: pwd",
		"",
		"Description:",
		"  Print the current directory.",
	},
	"cat": {
		"Usage: cat <file>",
		"",
		"Description:",
		"  Print the contents of a text file.",
	},
	"run": {
		"Usage: run <file.bas>",
		"",
		"Description:",
		"  Load and run a BASIC program.",
		"  While it runs, Ctrl-C or 'break' interrupts it",
		"  and 'stop' ends it at once.",
		"",
		"Statements:",
		"  PRINT LET INPUT GOTO GOSUB RETURN IF..THEN",
		"  FOR..TO..STEP NEXT END REM",
		"",
		"Functions:",
		"  RND INT",
	},
	"theme": {
		"Usage: theme [name]",
		"",
		"Description:",
		"  With no name, list the available themes.",
		"  Otherwise switch to the named theme.",
	},
	"time": {
		"Usage: time",
		"",
		"Description:",
		"  Show the current date and time.",
	},
	"version": {
		"Usage: version",
		"",
		"Description:",
		"  Show the system version.",
	},
	"clear": {
		"Usage: clear",
		"",
		"Description:",
		"  Clear the screen.",
	},
}

// aliases share a help page
var helpAliases = map[string]string{
	"cls":   "clear",
	"clock": "time",
	"ver":   "version",
}

func cmdHelp(s *Session, args []string) {
	if len(args) > 0 {
		showHelp(s, args[0])
		return
	}

	for _, line := range summary {
		s.out.Println(line)
	}
	s.out.Println("")
}

func showHelp(s *Session, cmd string) {
	if alias, ok := helpAliases[cmd]; ok {
		cmd = alias
	}

	txt, ok := helpTexts[cmd]
	if !ok {
		s.out.Println("No help for " + cmd)
		s.out.Println("")
		return
	}

	for _, line := range txt {
		s.out.Println(line)
	}
	s.out.Println("")
}
