package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/atlas/internal/api"
	"github.com/five82/atlas/internal/catalog"
	"github.com/five82/atlas/internal/config"
	"github.com/five82/atlas/internal/logging"
	"github.com/five82/atlas/internal/prefs"
	"github.com/five82/atlas/internal/state"
	"github.com/five82/atlas/internal/ui"
)

// Options configure the atlas application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/atlas/prefs.toml
	// Country opens the TUI on this detail record.
	Country string
	// LogToStderr overrides the configured log file.
	LogToStderr bool
}

// Session holds the collaborators shared by the TUI and the subcommands.
type Session struct {
	Config config.Config
	Prefs  prefs.Prefs
	Logger *zap.Logger
	Client *api.Client
	Source *catalog.Source
}

// Open loads configuration and preferences and builds the clients.
func Open(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load atlas config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logPath := cfg.LogFile
	if opts.LogToStderr {
		logPath = ""
	}
	logger, err := logging.New(logPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := api.NewClient(cfg.APIBind, api.Options{
		Timeout: cfg.RequestTimeout,
		Logger:  logger.Named("api"),
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	remote, err := catalog.NewRemote(cfg.CatalogURL, cfg.RequestTimeout)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	return &Session{
		Config: cfg,
		Prefs:  userPrefs,
		Logger: logger,
		Client: client,
		Source: catalog.NewSource(remote, logger.Named("catalog")),
	}, nil
}

// Close flushes the logger.
func (s *Session) Close() {
	if s != nil && s.Logger != nil {
		_ = s.Logger.Sync()
	}
}

// Run boots the atlas TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	session, err := Open(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	store := &state.Store{}

	// The UI draws a loading state until the one-shot load lands.
	StartLoader(ctx, store, session.Source, session.Prefs.CollationTag())

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    session.Client,
		Store:     store,
		Config:    &session.Config,
		Logger:    session.Logger,
		ThemeName: session.Prefs.Theme,
		Prefs:     session.Prefs,
		PrefsPath: opts.PrefsPath,
		Country:   opts.Country,
	}
	return ui.Run(uiOpts)
}
