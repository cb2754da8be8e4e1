package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LookupTheme(t *testing.T) {
	tests := []struct {
		id   string
		name string
		ok   bool
	}{
		{id: "dracula", name: "Dracula", ok: true},
		{id: "AMBER", name: "Amber", ok: true},
		{id: "Classic", name: "Classic Green", ok: true},
		{id: "solarized", ok: false},
	}

	for _, tt := range tests {
		th, ok := LookupTheme(tt.id)
		assert.Equal(t, tt.ok, ok, tt.id)
		assert.Equal(t, tt.name, th.Name, tt.id)
	}
}

func Test_ThemesIn(t *testing.T) {
	assert.Equal(t, []string{"amber", "classic"}, ThemesIn("Classic Terminals"))
	assert.Equal(t, []string{"terminal"}, ThemesIn("Retro Computers"))
	assert.Nil(t, ThemesIn("Nope"))
}

func Test_EveryThemeCategorized(t *testing.T) {
	listed := 0
	for _, cat := range Categories {
		listed += len(ThemesIn(cat))
	}
	assert.Equal(t, len(Themes), listed)

	for id, th := range Themes {
		assert.Equal(t, id, th.ID)
		assert.NotEmpty(t, th.Colors["bg"], id)
	}
}

func Test_Defaults(t *testing.T) {
	assert.Equal(t, "/", Defaults[Cwd])
	_, ok := LookupTheme(Defaults[Theme])
	assert.True(t, ok, "default theme must exist")
}
