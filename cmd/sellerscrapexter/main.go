// cmd/sellerscrapexter/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/valpere/SellerScrapexter/internal/config"
	"github.com/valpere/SellerScrapexter/internal/monitoring"
	"github.com/valpere/SellerScrapexter/internal/output"
	"github.com/valpere/SellerScrapexter/internal/runner"
	"github.com/valpere/SellerScrapexter/internal/server"
	"github.com/valpere/SellerScrapexter/internal/utils"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		configFile  = flag.String("config", "", "path to YAML configuration file")
		addr        = flag.String("addr", "", "listen address (overrides configuration)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("sellerscrapexter %s (built %s, commit %s)\n", version, buildTime, gitCommit)
		return
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}

	logger := utils.NewLoggerWithLevel(utils.ParseLevel(cfg.LogLevel))
	metrics := monitoring.New()

	orch := runner.New(cfg, logger, metrics)
	orch.SetExport(output.Export)

	srv := server.New(orch, logger, metrics.Handler())

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Infof("sellerscrapexter %s listening on %s", version, cfg.Server.Address)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Errorf("server error: %v", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
