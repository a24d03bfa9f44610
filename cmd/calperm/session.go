package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/calperm/calperm/internal/config"
	"github.com/calperm/calperm/internal/exchange"
	"github.com/calperm/calperm/internal/logging"
	"github.com/calperm/calperm/internal/opstate"
	"github.com/calperm/calperm/internal/style"
	"github.com/calperm/calperm/internal/termcap"
	"github.com/calperm/calperm/internal/tui"
	"github.com/calperm/calperm/internal/workflow"
)

// environment is everything a command needs after flags and the config file
// have been merged.
type environment struct {
	cfg       *config.Config
	configDir string
	logDir    string
	mode      termcap.Mode
}

func loadEnvironment() (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	configDir := filepath.Dir(configPath)
	if configPath == "" {
		if configDir, err = config.GetConfigDir(); err != nil {
			return nil, err
		}
	}

	if flagTenant != "" {
		cfg.Exchange.Tenant = flagTenant
	}
	if flagEndpoint != "" {
		cfg.Exchange.Endpoint = flagEndpoint
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagColor != "" {
		cfg.UI.ColorMode = flagColor
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	env := &environment{
		cfg:       cfg,
		configDir: configDir,
		logDir:    cfg.LogDir(configDir),
		mode:      colorMode(cfg, termcap.Probe{}, os.Stdout),
	}

	opts := logging.Options{Level: cfg.Logging.Level}
	if cfg.Logging.DebugToFile {
		if err := os.MkdirAll(env.logDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		opts.OutputPath = filepath.Join(env.logDir, config.DebugLogFile)
	}
	if err := logging.Initialize(opts); err != nil {
		return nil, err
	}
	logging.Debug("Environment loaded",
		zap.String("config_dir", configDir),
		zap.String("mode", env.mode.String()),
		zap.String("tenant", cfg.Exchange.Tenant))
	return env, nil
}

// colorMode applies NO_COLOR, then a forced mode, then detection.
func colorMode(cfg *config.Config, probe termcap.Probe, out *os.File) termcap.Mode {
	if probe.Getenv == nil {
		probe.Getenv = os.Getenv
	}
	if probe.Getenv("NO_COLOR") != "" {
		return termcap.NoColor
	}
	if mode, ok := cfg.ColorMode(); ok {
		return mode
	}
	return probe.Detect(out)
}

// renderer builds the style renderer for out in the session's mode.
func (e *environment) renderer(out *os.File, warnings io.Writer) *style.Renderer {
	r := style.New(e.mode, out)
	r.Warnings = warnings
	r.Fallback = e.cfg.UI.DefaultForeground
	r.LogDir = e.logDir
	r.Width = func() int { return termcap.Width(out) }
	if e.mode == termcap.NativeColor {
		r.Console = termcap.NewConsole(out)
	}
	return r
}

// tracker keeps the window title in sync with the operation in progress.
func (e *environment) tracker(out *os.File) *opstate.Tracker {
	t := opstate.NewTracker(e.cfg.UI.AppName)
	if e.mode.SupportsEscapes() {
		term := termenv.NewOutput(out)
		t.OnChange = term.SetWindowTitle
		term.SetWindowTitle(t.Title())
	}
	return t
}

func (e *environment) keyringDir() string {
	return filepath.Join(e.configDir, "keyring")
}

func (e *environment) client() *exchange.Client {
	ring, err := exchange.OpenKeyring(e.keyringDir())
	if err != nil {
		// The environment variable still works without a keyring.
		logging.Warn("Keyring unavailable", zap.Error(err))
	}

	c := exchange.NewClient(e.cfg.Exchange.Endpoint, e.cfg.Exchange.Tenant, exchange.KeyringTokens{Ring: ring})
	c.SetTimeout(e.cfg.Timeout())
	c.MaxRetries = e.cfg.Exchange.MaxRetries
	return c
}

func (e *environment) app() *workflow.App {
	r := e.renderer(os.Stdout, os.Stderr)
	theme := tui.NewTheme(r, e.cfg.Border(), e.tracker(os.Stdout))
	app := workflow.New(tui.NewConsole(theme, tui.ProgramRunner{}), e.client())
	app.Audit = e.cfg.AuditLog("INFO")
	return app
}
