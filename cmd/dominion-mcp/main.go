package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dannyallover/dominion/internal/config"
	dommcp "github.com/dannyallover/dominion/internal/mcp"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	kingdoms := flag.String("kingdoms", "", "path to kingdom presets file")
	port := flag.String("port", "", "TCP port for human player connection")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *kingdoms != "" {
		cfg.Game.KingdomFile = *kingdoms
	}
	if *port != "" {
		cfg.MCP.Port = *port
	}

	// stdout carries the MCP protocol; the logger writes to stderr.
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	tools := &dommcp.Tools{
		Port:          cfg.MCP.Port,
		KingdomFile:   cfg.Game.KingdomFile,
		KingdomPreset: cfg.Game.KingdomPreset,
		Seed:          cfg.Game.Seed,
		NoShuffle:     cfg.Game.NoShuffle,
		MaxTurns:      cfg.Game.MaxTurns,
		DemoHands:     cfg.Game.Demo,
		Logger:        logger,
	}
	defer tools.Close()

	s := server.NewMCPServer("dominion", "1.0.0")
	dommcp.RegisterTools(s, tools)

	logger.Info("serving MCP over stdio", zap.String("human_port", cfg.MCP.Port))
	if err := server.ServeStdio(s); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
		os.Exit(1)
	}
}
