package settings

import (
	"sort"
	"strings"
)

// keys for the per session settings
const (
	Cwd   = "cwd"   // current directory in the virtual filesystem
	Theme = "theme" // terminal color theme
	User  = "user"  // name shown in the prompt
)

// Defaults for a new session
var Defaults = map[string]string{
	Cwd:   "/",
	Theme: "dracula",
	User:  "guest",
}

// ColorTheme is a set of terminal colors
type ColorTheme struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Colors   map[string]string `json:"colors"`
}

// Themes the terminal knows, by id
var Themes = map[string]ColorTheme{
	"classic": {
		ID:       "classic",
		Name:     "Classic Green",
		Category: "Classic Terminals",
		Colors: map[string]string{
			"bg": "#0f0f0f", "text": "#00ff88be", "prompt": "#3cff01", "caret": "#00ff8894",
			"header": "#91c7b3", "footer": "#00aa66", "dir": "#00ff88", "lnk": "#bbff00bd", "txt": "#c1ffe2",
		},
	},
	"amber": {
		ID:       "amber",
		Name:     "Amber",
		Category: "Classic Terminals",
		Colors: map[string]string{
			"bg": "#1a0f00", "text": "#ffb000", "prompt": "#ffd700", "caret": "#ffb000cc",
			"header": "#d4a574", "footer": "#cc8800", "dir": "#ffd885", "lnk": "#ffb000", "txt": "#fce1a7",
		},
	},
	"terminal": {
		ID:       "terminal",
		Name:     "Ubuntu Terminal",
		Category: "Retro Computers",
		Colors: map[string]string{
			"bg": "#300a24", "text": "#ffffff", "prompt": "#00ff00", "caret": "#ffffffdd",
			"header": "#eeeeee", "footer": "#aaaaaa", "dir": "#fcfcb2", "lnk": "#a0f2f8", "txt": "#ffffff",
		},
	},
	"dracula": {
		ID:       "dracula",
		Name:     "Dracula",
		Category: "Modern Themes",
		Colors: map[string]string{
			"bg": "#282a36", "text": "#f6f2f8", "prompt": "#50fa7b", "caret": "#f8f8f265",
			"header": "#ffae89", "footer": "#6272a4", "dir": "#fcfcb2", "lnk": "#a0f2f8", "txt": "#ffffff",
		},
	},
}

// Categories in the order they are listed
var Categories = []string{"Classic Terminals", "Retro Computers", "Modern Themes"}

// LookupTheme finds a theme, ids are case-insensitive
func LookupTheme(id string) (ColorTheme, bool) {
	th, ok := Themes[strings.ToLower(id)]
	return th, ok
}

// ThemesIn returns the ids of the themes in a category, sorted
func ThemesIn(category string) []string {
	var ids []string
	for id, th := range Themes {
		if th.Category == category {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
