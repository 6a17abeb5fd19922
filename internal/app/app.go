package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/database"
	"github.com/five82/perch/internal/logging"
	"github.com/five82/perch/internal/mockapi"
	"github.com/five82/perch/internal/prefs"
	"github.com/five82/perch/internal/service"
	"github.com/five82/perch/internal/source"
	"github.com/five82/perch/internal/state"
	"github.com/five82/perch/internal/store"
	"github.com/five82/perch/internal/ui"
)

var (
	_ Catalog       = (*service.Service)(nil)
	_ Streams       = (*service.Service)(nil)
	_ ui.Controller = (*Controller)(nil)
)

// fallbackBind is used when the configured mock address is taken.
const fallbackBind = "127.0.0.1:0"

// Options configure the perch application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/perch/prefs.toml
	APIURL     string // overrides api_url when set
	DBPath     string // overrides db_path when set
	ResetDB    bool   // roll back every migration before migrating
	Version    string
}

// openDatabase opens the catalog cache, migrates it and checks it answers.
// With reset, every migration is rolled back and reapplied, dropping the
// cached catalog, favorites and history.
func openDatabase(ctx context.Context, cfg database.Config, reset bool, logger *slog.Logger) (*database.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	fail := func(err error) (*database.DB, error) {
		_ = db.Close()
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		return fail(fmt.Errorf("migrate catalog database: %w", err))
	}
	if reset {
		if err := resetDatabase(ctx, db, logger); err != nil {
			return fail(err)
		}
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fail(err)
	}
	return db, nil
}

// resetDatabase rolls back every applied migration and migrates again.
func resetDatabase(ctx context.Context, db *database.DB, logger *slog.Logger) error {
	for {
		applied, err := db.AppliedVersions(ctx)
		if err != nil {
			return fmt.Errorf("reset catalog database: %w", err)
		}
		if len(applied) == 0 {
			break
		}
		if err := db.MigrateDown(ctx); err != nil {
			return fmt.Errorf("reset catalog database: %w", err)
		}
		logger.Info("rolled back migration", "version", applied[len(applied)-1])
	}
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate catalog database: %w", err)
	}
	return nil
}

// Run boots perch and blocks until the UI exits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load perch config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.DBPath != "" {
		path, err := config.ExpandPath(opts.DBPath)
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
		cfg.DBPath = path
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger, err := logging.NewFile(cfg.LogDir, logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "perch",
		Version: opts.Version,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Close()

	db, err := openDatabase(ctx, database.Config{
		Path:        cfg.DBPath,
		WALMode:     true,
		BusyTimeout: cfg.BusyTimeout,
	}, opts.ResetDB, logger.Logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	apiURL := cfg.APIURL
	if cfg.UsesMock() {
		apiURL, err = startMockAPI(ctx, cfg.MockBind, logger.Logger)
		if err != nil {
			return err
		}
	}

	client, err := source.NewClient(apiURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	svc := service.New(store.New(db, logger.Logger), client, service.Options{Logger: logger.Logger})
	engine := state.NewStore()
	pumpDone := StartPump(ctx, svc, engine)
	ctrl := NewController(svc, engine, logger.Logger)

	if category := strings.TrimSpace(userPrefs.Category); category != "" {
		engine.Dispatch(state.CategorySelected{Category: state.Some(category)})
	}

	// Initial sync runs in the background; the UI renders cached data meanwhile.
	go func() { _ = ctrl.LoadCategories(ctx) }()
	go func() { _ = ctrl.Refresh(ctx) }()

	logger.Info("perch started", "api", client.BaseURL(), "db", db.Path())

	err = ui.Run(ui.Options{
		Context:    ctx,
		Store:      engine,
		Controller: ctrl,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
		LogPath:    cfg.LogPath(),
		APIURL:     client.BaseURL(),
	})

	cancel()
	<-pumpDone
	logger.Info("perch stopped")
	return err
}

// startMockAPI serves the embedded catalog on bind, or on a free port when
// bind is unavailable, and returns its base URL.
func startMockAPI(ctx context.Context, bind string, logger *slog.Logger) (string, error) {
	seed, err := mockapi.DefaultSeed()
	if err != nil {
		return "", fmt.Errorf("load embedded catalog: %w", err)
	}
	srv := mockapi.New(seed, logger)
	if err := srv.Start(ctx, bind); err != nil {
		logger.Warn("mock api bind failed, using a free port", "bind", bind, "error", err)
		if err := srv.Start(ctx, fallbackBind); err != nil {
			return "", fmt.Errorf("start mock api: %w", err)
		}
	}
	return srv.URL(), nil
}
