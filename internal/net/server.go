package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"go.uber.org/zap"

	"github.com/dannyallover/dominion/internal/game"
	"github.com/dannyallover/dominion/internal/log"
)

// Server hosts a game between the local terminal (P1) and one TCP client (P2).
type Server struct {
	Port      string
	HostName  string
	Kingdom   []string // nil picks a random kingdom
	Seed      int64
	NoShuffle bool
	MaxTurns  int
	DemoHands bool
	Logger    *zap.Logger

	// Host terminal; defaults to stdin/stdout.
	In  io.Reader
	Out io.Writer
}

// Run starts the server, waits for a client to join, then runs the game.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	s.logger().Info("waiting for opponent", zap.String("port", s.Port))
	return s.Serve(ctx, ln)
}

// Serve accepts exactly one joiner from ln and plays a game against it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := s.logger()
	in, out := s.In, s.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	// Read the joiner's handshake
	dec := json.NewDecoder(conn)
	var joinMsg ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if joinMsg.Type != MsgJoin {
		return fmt.Errorf("expected join message, got %q", joinMsg.Type)
	}
	logger.Info("opponent connected",
		zap.String("remote", conn.RemoteAddr().String()),
		zap.String("name", joinMsg.Name))

	// Create a pipe for the host's local connection
	hostConn, hostServerConn := net.Pipe()
	defer hostConn.Close()
	defer hostServerConn.Close()

	// Player 0 = host, Player 1 = joiner
	hostCtrl := NewNetworkController(hostServerConn, 0)
	joinerCtrl := NewNetworkControllerWithDecoder(conn, dec, 1)

	g, err := game.NewGame(game.Config{
		Kingdom:   s.Kingdom,
		Names:     [2]string{s.HostName, joinMsg.Name},
		Logger:    log.NewZapLogger(logger),
		Seed:      s.Seed,
		NoShuffle: s.NoShuffle,
		MaxTurns:  s.MaxTurns,
		DemoHands: s.DemoHands,
	}, hostCtrl, joinerCtrl)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	logger.Info("game created", zap.String("game_id", g.State.ID))

	// Run the host's local REPL in a goroutine
	errCh := make(chan error, 2)
	go func() {
		client := NewClient(hostConn, in, out, g.State.Players[0].Name)
		errCh <- client.RunREPL(ctx)
	}()

	go func() {
		winner, err := g.Run(ctx)
		if err != nil {
			errCh <- fmt.Errorf("game error: %w", err)
			return
		}
		logger.Info("game over",
			zap.String("game_id", g.State.ID),
			zap.Int("winner", winner),
			zap.String("result", g.State.Result))

		_ = joinerCtrl.SendGameOver(winner, g.State.Result)
		_ = hostCtrl.SendGameOver(winner, g.State.Result)
		errCh <- nil
	}()

	// Wait for either the game or the REPL to finish
	return <-errCh
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
