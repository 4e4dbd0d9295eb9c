package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/pomodoro/pkg/adapt"
	"github.com/umputun/pomodoro/pkg/app"
	"github.com/umputun/pomodoro/pkg/config"
	"github.com/umputun/pomodoro/pkg/domain"
	"github.com/umputun/pomodoro/pkg/repository"
	"github.com/umputun/pomodoro/pkg/settings"
	"github.com/umputun/pomodoro/pkg/timer"
)

// Opts with all CLI options
type Opts struct {
	Settings string `short:"s" long:"settings" env:"POMODORO_SETTINGS" default:"pomodoro_settings.json" description:"settings file with durations and ratings"`
	Config   string `short:"c" long:"config" env:"POMODORO_CONFIG" description:"optional yaml config with limits and adaptation rules"`
	DB       string `long:"db" env:"POMODORO_DB" default:"pomodoro.db" description:"session journal database, empty to disable"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	SetupLog(opts.Debug)
	if opts.NoColor {
		color.NoColor = true
	}

	log.Printf("[INFO] starting pomodoro version %s", revision)

	// SIGTERM cancels the run, Ctrl-C is handled per countdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	err := run(ctx, opts, os.Stdin, os.Stdout)
	terminated := ctx.Err() != nil
	stop()

	if code := exitCode(err, terminated, os.Stderr); code != 0 {
		os.Exit(code)
	}
	log.Print("[INFO] shutdown complete")
}

// exitCode reports a run error and returns the process exit status.
// Cancellation caused by a termination signal is a normal shutdown.
func exitCode(err error, terminated bool, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if terminated && errors.Is(err, context.Canceled) {
		log.Print("[INFO] termination signal received")
		return 0
	}
	log.Printf("[ERROR] pomodoro failed: %v", err)
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

// run wires components and serves the interactive menu until exit
func run(ctx context.Context, opts Opts, in io.Reader, out io.Writer) error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log.Printf("[INFO] config loaded from %s", opts.Config)
	}

	limits := domain.Limits{
		MinWork:  cfg.Limits.MinWork,
		MaxWork:  cfg.Limits.MaxWork,
		MinBreak: cfg.Limits.MinBreak,
		MaxBreak: cfg.Limits.MaxBreak,
	}

	store := settings.NewStore(settings.Config{
		Path:         opts.Settings,
		Limits:       limits,
		DefaultWork:  cfg.Defaults.Work,
		DefaultBreak: cfg.Defaults.Break,
		MaxRatings:   cfg.History.MaxRatings,
	})

	engine := adapt.NewEngine(adapt.Rules{
		HighThreshold: cfg.Adapt.HighThreshold,
		LowThreshold:  cfg.Adapt.LowThreshold,
		WorkStep:      cfg.Adapt.WorkStep,
		BreakStep:     cfg.Adapt.BreakStep,
		Limits:        limits,
	})

	appCfg := app.Config{
		Store:  store,
		Engine: engine,
		Runner: timer.NewRunner(timer.Config{In: in, Out: out, Tick: cfg.Timer.Tick}),
		Limits: limits,
	}

	// journal is optional, failing to open it only disables statistics
	if opts.DB != "" {
		repos, err := repository.NewRepositories(ctx, repository.Config{
			DSN:          "file:" + opts.DB + "?mode=rwc&_txlock=immediate",
			MaxOpenConns: 1,
		})
		if err != nil {
			log.Printf("[WARN] session journal disabled, can't open %s: %v", opts.DB, err)
		} else {
			defer func() {
				if err := repos.Close(); err != nil {
					log.Printf("[WARN] failed to close journal: %v", err)
				}
			}()
			appCfg.Journal = NewJournalAdapter(repos)
		}
	}

	return app.New(appCfg).Run(ctx)
}

// SetupLog configures lgr and the standard logger, debug mode adds caller info and debug level
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError, lgr.Out(os.Stderr)}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
