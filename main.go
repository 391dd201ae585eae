package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"

	"github.com/filetug/dirnav/pkg/browser"
	"github.com/filetug/dirnav/pkg/dirnav"
	"github.com/filetug/dirnav/pkg/dnsettings"
	"github.com/filetug/dirnav/pkg/files"
	"github.com/filetug/dirnav/pkg/files/osfile"
	"github.com/filetug/dirnav/pkg/fsutils"
	"github.com/filetug/dirnav/pkg/logging"
	"github.com/filetug/dirnav/pkg/profiling"
	"github.com/google/uuid"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var (
	osExit             = os.Exit
	osChdir            = os.Chdir
	httpListenAndServe = http.ListenAndServe
	openLogFile        = openLog
	newStore           = func() files.Store { return osfile.NewStore("/") }
	newApp             = tview.NewApplication
	setupApp           = browser.SetupApp
)

type application interface{ Run() error }

var run = func(app application) error {
	return app.Run()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		osExit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
	dir        string
	cpuProfile string
	memProfile string
	pprofAddr  string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "dirnav",
		Short:        "Browse directories one level at a time",
		Long:         "dirnav starts in the working directory and lets you enter entries, go back up and dismiss listing errors.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowser(cmd.Context(), opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default is ~/.dirnav/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn, error or off; overrides the settings file")
	flags.StringVar(&opts.dir, "dir", "", "start in this directory instead of the current one")
	flags.StringVar(&opts.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flags.StringVar(&opts.memProfile, "memprofile", "", "write memory profile to `file`")
	flags.StringVar(&opts.pprofAddr, "pprof", "", "start pprof http server on `address` (e.g. localhost:6060)")
	return cmd
}

func runBrowser(ctx context.Context, opts options) error {
	settings, err := dnsettings.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}

	logOut, closeLog, err := openLogFile(settings)
	if err != nil {
		return err
	}
	defer closeLog()
	logging.InitializeLogger(logging.ParseLevel(settings.LogLevel), logOut)
	session := uuid.NewString()
	log := logging.GetLogger("main").With().Str("session", session).Logger()

	if opts.pprofAddr != "" {
		go func() {
			if err := httpListenAndServe(opts.pprofAddr, nil); err != nil {
				log.Error().Err(err).Str("addr", opts.pprofAddr).Msg("pprof server stopped")
			}
		}()
	}
	if opts.cpuProfile != "" {
		defer profiling.DoCPUProfiling(opts.cpuProfile)()
	}
	if opts.memProfile != "" {
		defer profiling.DoMemProfiling(opts.memProfile)()
	}

	if opts.dir != "" {
		dir := fsutils.ExpandHome(opts.dir)
		exists, err := fsutils.DirExists(dir)
		if err != nil {
			return fmt.Errorf("failed to check directory %s: %w", opts.dir, err)
		}
		if !exists {
			return fmt.Errorf("not a directory: %s", opts.dir)
		}
		if err = osChdir(dir); err != nil {
			return fmt.Errorf("failed to change directory: %w", err)
		}
	}

	navLog := logging.GetLogger("navigator").With().Str("session", session).Logger()
	nav, err := dirnav.Initialize(ctx, newStore(), dirnav.WithLogger(navLog))
	if err != nil {
		log.Error().Err(err).Msg("failed to start navigation session")
		return err
	}
	log.Info().Str("dir", nav.Current()).Msg("navigation session started")

	uiLog := logging.GetLogger("browser").With().Str("session", session).Logger()
	b := setupApp(newApp(), nav, settings, browser.WithLogger(uiLog))
	defer b.Close()

	err = run(b.App())
	log.Info().Err(err).Msg("browser stopped")
	return err
}

// openLog opens the log destination from settings. "-" means stderr.
func openLog(settings *dnsettings.Settings) (io.Writer, func(), error) {
	if settings.LogFile == "-" {
		return os.Stderr, func() {}, nil
	}
	p := settings.LogFilePath()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
