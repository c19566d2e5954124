package mcp

import (
	"context"

	"github.com/dannyallover/dominion/internal/game"
	"github.com/dannyallover/dominion/internal/log"
	domnet "github.com/dannyallover/dominion/internal/net"
)

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
// Selections are passed through raw; the engine validates them and reports
// rejected ones as InvalidChoice events.
type MCPController struct {
	player     int
	session    *GameSession
	responseCh chan any
}

// NewMCPController creates a controller for the given player.
func NewMCPController(player int, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan any),
	}
}

// await publishes d and blocks until a tool handler answers it.
func (c *MCPController) await(ctx context.Context, d *PendingDecision) (any, error) {
	select {
	case c.session.pendingCh <- d:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-c.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Choose implements game.PlayerController.
func (c *MCPController) Choose(ctx context.Context, state *game.GameState, q game.Query) (string, error) {
	snap := state.SnapshotFor(c.player)
	resp, err := c.await(ctx, &PendingDecision{
		Type:   DecisionChoose,
		Player: c.player,
		State:  &snap,
		Query:  &q,
	})
	if err != nil {
		return "", err
	}
	return resp.(string), nil
}

// ChooseYesNo implements game.PlayerController.
func (c *MCPController) ChooseYesNo(ctx context.Context, state *game.GameState, prompt string) (bool, error) {
	snap := state.SnapshotFor(c.player)
	resp, err := c.await(ctx, &PendingDecision{
		Type:   DecisionChooseYesNo,
		Player: c.player,
		State:  &snap,
		Prompt: prompt,
	})
	if err != nil {
		return false, err
	}
	return resp.(bool), nil
}

// Notify implements game.PlayerController.
// Only the agent's controller appends events to avoid duplicates.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	if c.player == c.session.agentPlayer {
		c.session.appendEvent(*domnet.NewEventView(event))
	}
	return nil
}
