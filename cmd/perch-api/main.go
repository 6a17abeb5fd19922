// Command perch-api serves the mock peripheral catalog over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/five82/perch/internal/logging"
	"github.com/five82/perch/internal/mockapi"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	bind := flag.String("bind", "127.0.0.1:7488", "listen address")
	catalogPath := flag.String("catalog", "", "catalog YAML file (optional, defaults to the built-in catalog)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	_ = godotenv.Load()

	logger := logging.New(os.Stderr, logging.Options{
		Level:   *logLevel,
		Format:  *logFormat,
		Service: "perch-api",
		Version: version,
	})

	seed, err := loadSeed(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "perch-api: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The server gets its own context so shutdown below can be waited on.
	srvCtx, stop := context.WithCancel(context.Background())
	defer stop()

	srv := mockapi.New(seed, logger.Logger)
	if err := srv.Start(srvCtx, *bind); err != nil {
		fmt.Fprintf(os.Stderr, "perch-api: %v\n", err)
		return 1
	}

	<-ctx.Done()
	if err := srv.Close(); err != nil {
		logger.Error("shutdown failed", "error", err)
		return 1
	}
	logger.Info("mock api stopped")
	return 0
}

func loadSeed(path string) (mockapi.Seed, error) {
	if path == "" {
		return mockapi.DefaultSeed()
	}
	return mockapi.LoadSeedFile(path)
}
