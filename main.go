package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/navionguy/nextbasic/config"
	"github.com/navionguy/nextbasic/fileserv"
	"github.com/navionguy/nextbasic/runner"
	"github.com/navionguy/nextbasic/vfs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	cfgFile = flag.String("config", config.FileName, "configuration file")
	listen  = flag.String("listen", "", "listen address, overrides the config file")
	fsFile  = flag.String("fs", "", "filesystem json, overrides the config file")
	runFile = flag.String("run", "", "run a .bas file in this terminal and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	if len(*listen) > 0 {
		cfg.Listen = *listen
	}
	if len(*fsFile) > 0 {
		cfg.Filesystem = *fsFile
	}

	setupLogging(cfg)

	if len(*runFile) > 0 {
		os.Exit(runLocal(cfg, *runFile))
	}

	vf, err := loadFS(cfg.Filesystem)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Filesystem).Msg("cannot load filesystem")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.Listen, Handler: startup(cfg, vf)}
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		srv.Shutdown(sctx)
	}()

	log.Info().Str("listen", cfg.Listen).Str("assets", cfg.Assets).Msg("listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}

	if err := saveFS(vf, cfg.Filesystem); err != nil {
		log.Error().Err(err).Str("file", cfg.Filesystem).Msg("filesystem not saved")
	}
}

// how long open requests get to finish on shutdown
const shutdownWait = 5 * time.Second

// startup builds the routes the server answers
func startup(cfg config.Config, vf *vfs.FS) *mux.Router {
	rtr := mux.NewRouter()

	fileserv.WrapFilesystem(rtr, vf)
	fileserv.WrapTerminal(rtr, vf, runnerOptions(cfg)...)
	fileserv.WrapFileSources(rtr, cfg.Assets)

	return rtr
}

func runnerOptions(cfg config.Config) []runner.Option {
	return []runner.Option{
		runner.WithThrottle(cfg.Throttle()),
		runner.WithSeed(cfg.Basic.Seed),
	}
}

func setupLogging(cfg config.Config) {
	lvl, _ := cfg.LogLevel()
	zerolog.SetGlobalLevel(lvl)

	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// httpGetter is the part of http.Client used to fetch a filesystem
type httpGetter interface {
	Get(url string) (*http.Response, error)
}

// loadFS reads the filesystem json, a missing file gives an empty root.
// An http(s) url is fetched instead of opened.
func loadFS(path string) (*vfs.FS, error) {
	if isURL(path) {
		return fetchFS(http.DefaultClient, path)
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", path).Msg("no filesystem file, starting empty")
		return vfs.New(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return vfs.Load(f)
}

// saveFS writes the filesystem back so saved files survive a restart.
// A filesystem fetched from a url is left alone.
func saveFS(vf *vfs.FS, path string) error {
	if isURL(path) {
		log.Debug().Str("url", path).Msg("filesystem came from a url, not saving")
		return nil
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := vf.Save(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	log.Info().Str("file", path).Msg("filesystem saved")
	return nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func fetchFS(cl httpGetter, url string) (*vfs.FS, error) {
	rsp, err := cl.Get(url)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, rsp.StatusCode)
	}

	return vfs.Load(rsp.Body)
}
