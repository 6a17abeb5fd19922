package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/five82/perch/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/perch/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	apiURL := flag.String("api", "", "catalog API base URL (optional, overrides api_url)")
	dbPath := flag.String("db", "", "catalog database path (optional, overrides db_path)")
	resetDB := flag.Bool("reset-db", false, "drop the cached catalog, favorites and history before starting")
	flag.Parse()

	// A missing .env is fine; the environment and config file still apply.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		APIURL:     *apiURL,
		DBPath:     *dbPath,
		ResetDB:    *resetDB,
		Version:    version,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "perch: %v\n", err)
		return 1
	}
	return 0
}
