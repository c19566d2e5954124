package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dannyallover/dominion/internal/config"
	"github.com/dannyallover/dominion/internal/game"
	domnet "github.com/dannyallover/dominion/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  dominion-cli host [--config FILE] [--port P] [--kingdoms FILE] [--kingdom NAME|N] [--seed S] [--demo] [--name NAME]")
	fmt.Println("  dominion-cli join [--config FILE] [--addr ADDR] [--name NAME]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a game server and play as Player 1")
	fmt.Println("  join    Connect to a game server and play as Player 2")
}

// setup loads the config file and builds the process logger.
func setup(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}
	return cfg, logger, nil
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	port := fs.String("port", "", "TCP port to listen on")
	kingdomFile := fs.String("kingdoms", "", "path to kingdom presets file")
	preset := fs.String("kingdom", "", "kingdom preset name or number (random if unset)")
	seed := fs.Int64("seed", 0, "shuffle seed (0 for random)")
	demo := fs.Bool("demo", false, "deal the demo cards into both opening hands")
	name := fs.String("name", "", "your player name")
	fs.Parse(args)

	cfg, logger, err := setup(*configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if *port != "" {
		cfg.Server.Port = *port
	}
	if *kingdomFile != "" {
		cfg.Game.KingdomFile = *kingdomFile
	}
	if *preset != "" {
		cfg.Game.KingdomPreset = *preset
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if *demo {
		cfg.Game.Demo = true
	}
	names := cfg.Game.Names()
	if *name != "" {
		names[0] = *name
	}

	var kingdom []string
	if cfg.Game.KingdomPreset != "" {
		k, err := game.KingdomPreset(cfg.Game.KingdomFile, cfg.Game.KingdomPreset)
		if err != nil {
			return err
		}
		kingdom = k.Cards
		logger.Info("using kingdom preset", zap.String("name", k.Name), zap.Strings("cards", k.Cards))
	}

	srv := &domnet.Server{
		Port:      cfg.Server.Port,
		HostName:  names[0],
		Kingdom:   kingdom,
		Seed:      cfg.Game.Seed,
		NoShuffle: cfg.Game.NoShuffle,
		MaxTurns:  cfg.Game.MaxTurns,
		DemoHands: cfg.Game.Demo,
		Logger:    logger,
	}
	fmt.Printf("Waiting for opponent on port %s...\n", cfg.Server.Port)
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	addr := fs.String("addr", "", "server address to connect to (default from config)")
	name := fs.String("name", "", "your player name")
	fs.Parse(args)

	cfg, logger, err := setup(*configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	target := *addr
	if target == "" {
		target = cfg.Server.Addr + ":" + cfg.Server.Port
	}
	playerName := *name
	if playerName == "" {
		playerName = cfg.Game.Names()[1]
	}
	logger.Debug("joining game", zap.String("addr", target), zap.String("name", playerName))
	return domnet.Connect(ctx, target, playerName)
}
