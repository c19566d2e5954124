package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dannyallover/dominion/internal/config"
	"github.com/dannyallover/dominion/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	port := flag.String("port", "", "HTTP port to listen on")
	kingdoms := flag.String("kingdoms", "", "path to kingdom presets file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Web.Port = *port
	}
	if *kingdoms != "" {
		cfg.Game.KingdomFile = *kingdoms
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	srv := web.NewServer(cfg.Game.KingdomFile, logger)

	addr := ":" + cfg.Web.Port
	logger.Info("dominion web UI listening", zap.String("url", "http://localhost"+addr))
	if err := srv.ListenAndServe(addr); err != nil {
		logger.Error("web server stopped", zap.Error(err))
		os.Exit(1)
	}
}
