package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Default(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 200*time.Millisecond, cfg.Throttle())
	assert.Equal(t, int64(0), cfg.Basic.Seed)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)
}

func Test_Parse(t *testing.T) {
	const text = `
listen = "127.0.0.1:9000"
filesystem = "/srv/fs.json"

[basic]
throttle_ms = 0
seed = 1984

[log]
level = "debug"
pretty = true
`
	cfg, err := Parse(text, Default())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, "./assets", cfg.Assets, "unset keys keep their default")
	assert.Equal(t, "/srv/fs.json", cfg.Filesystem)
	assert.Equal(t, time.Duration(0), cfg.Throttle())
	assert.Equal(t, int64(1984), cfg.Basic.Seed)
	assert.True(t, cfg.Log.Pretty)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)
}

func Test_ParseErrors(t *testing.T) {
	tests := []string{
		`listen = `,
		`listen = 8080`,
		`colour = "green"`,
		"[basic]\nthrottle_ms = -5",
		"[log]\nlevel = \"loud\"",
	}

	for _, tt := range tests {
		cfg, err := Parse(tt, Default())

		assert.Error(t, err, tt)
		assert.Equal(t, Default(), cfg, "a failed parse should hand back the base")
	}
}

func Test_Load(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err, "a missing file isn't an error")
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("assets = \"./web\"\n"), 0o600))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./web", cfg.Assets)

	_, err = Load(dir)
	assert.Error(t, err, "reading a directory should fail")
}
