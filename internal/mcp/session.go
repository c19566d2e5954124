package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	stdnet "net"
	"sync"

	"go.uber.org/zap"

	"github.com/dannyallover/dominion/internal/game"
	"github.com/dannyallover/dominion/internal/log"
	domnet "github.com/dannyallover/dominion/internal/net"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChoose      DecisionType = "choose"
	DecisionChooseYesNo DecisionType = "choose_yes_no"
	DecisionGameOver    DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type   DecisionType   `json:"type"`
	Player int            `json:"player"`
	State  *game.Snapshot `json:"state"`
	Query  *game.Query    `json:"query,omitempty"`
	Prompt string         `json:"prompt,omitempty"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string             `json:"game_id,omitempty"`
	Events   []domnet.EventView `json:"events"`
	State    *game.Snapshot     `json:"state,omitempty"`
	Pending  *PendingView       `json:"pending,omitempty"`
	GameOver bool               `json:"game_over"`
	Winner   int                `json:"winner,omitempty"`
	Result   string             `json:"result,omitempty"`
	Port     string             `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type      DecisionType `json:"type"`
	ForPlayer string       `json:"for_player"`
	Query     *game.Query  `json:"query,omitempty"`
	Prompt    string       `json:"prompt,omitempty"`
}

// SessionConfig is everything a session needs besides the human's connection.
type SessionConfig struct {
	Kingdom     []string
	Seed        int64
	NoShuffle   bool
	MaxTurns    int
	DemoHands   bool
	AgentPlayer int
	Logger      *zap.Logger
}

// GameSession holds the state of a single MCP game session.
type GameSession struct {
	game        *game.Game
	agentCtrl   *MCPController
	humanCtrl   *domnet.NetworkController
	agentPlayer int
	logger      *zap.Logger
	cancel      context.CancelFunc
	done        chan struct{} // closed when the game goroutine exits

	listener  stdnet.Listener
	humanConn stdnet.Conn

	pendingCh chan *PendingDecision

	mu             sync.Mutex
	currentPending *PendingDecision
	events         []domnet.EventView
	gameOver       bool
	winner         int
	result         string
}

// NewGameSession waits on ln for the human player to join via
// `dominion-cli join`, then starts the game in the background.
func NewGameSession(cfg SessionConfig, ln stdnet.Listener) (*GameSession, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Accept one connection (blocks until the human joins)
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("accept: %w", err)
	}

	// The human controller must keep this decoder: it may have buffered
	// bytes past the join message.
	dec := json.NewDecoder(conn)
	var joinMsg domnet.ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("read join message: %w", err)
	}

	sess := &GameSession{
		agentPlayer: cfg.AgentPlayer,
		logger:      logger,
		pendingCh:   make(chan *PendingDecision, 1),
		winner:      -1,
		listener:    ln,
		humanConn:   conn,
	}

	humanPlayer := 1 - cfg.AgentPlayer
	sess.agentCtrl = NewMCPController(cfg.AgentPlayer, sess)
	sess.humanCtrl = domnet.NewNetworkControllerWithDecoder(conn, dec, humanPlayer)

	var names [2]string
	names[cfg.AgentPlayer] = "Agent"
	names[humanPlayer] = joinMsg.Name
	ctrls := [2]game.PlayerController{}
	ctrls[cfg.AgentPlayer] = sess.agentCtrl
	ctrls[humanPlayer] = sess.humanCtrl

	g, err := game.NewGame(game.Config{
		Kingdom:   cfg.Kingdom,
		Names:     names,
		Logger:    log.NewZapLogger(logger),
		Seed:      cfg.Seed,
		NoShuffle: cfg.NoShuffle,
		MaxTurns:  cfg.MaxTurns,
		DemoHands: cfg.DemoHands,
	}, ctrls[0], ctrls[1])
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("create game: %w", err)
	}
	sess.game = g
	logger.Info("mcp game started",
		zap.String("game_id", g.State.ID),
		zap.Int("agent_player", cfg.AgentPlayer),
		zap.String("human", joinMsg.Name))

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	sess.done = make(chan struct{})

	go func() {
		defer close(sess.done)
		winner, err := g.Run(ctx)
		result := g.State.Result
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
			logger.Warn("mcp game aborted", zap.String("game_id", g.State.ID), zap.Error(err))
		}

		// Notify human over TCP
		_ = sess.humanCtrl.SendGameOver(winner, result)

		// Clean up TCP resources
		sess.humanConn.Close()
		sess.listener.Close()

		sess.mu.Lock()
		sess.gameOver = true
		sess.winner = winner
		sess.result = result
		sess.mu.Unlock()

		snap := g.State.SnapshotFor(sess.agentPlayer)
		select {
		case sess.pendingCh <- &PendingDecision{Type: DecisionGameOver, Player: winner, State: &snap}:
		case <-ctx.Done():
		}
	}()

	return sess, nil
}

// Close stops the game, releases the human connection and waits for the
// game goroutine to exit.
func (s *GameSession) Close() {
	s.cancel()
	s.humanConn.Close()
	s.listener.Close()
	<-s.done
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev domnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []domnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []domnet.EventView{}
	}
	return events
}

// pending returns the decision the engine last asked for.
func (s *GameSession) pending() *PendingDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPending
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	s.currentPending = pending
	s.mu.Unlock()

	resp := &ToolResponse{
		GameID: s.game.State.ID,
		Events: s.drainEvents(),
		State:  pending.State,
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp, nil
	}

	resp.Pending = &PendingView{
		Type:      pending.Type,
		ForPlayer: s.playerLabel(pending.Player),
		Query:     pending.Query,
		Prompt:    pending.Prompt,
	}
	return resp, nil
}

// playerLabel returns "agent" or "human" for the given player index.
func (s *GameSession) playerLabel(player int) string {
	if player == s.agentPlayer {
		return "agent"
	}
	return "human"
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
