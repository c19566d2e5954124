package mcp

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dannyallover/dominion/internal/game"
)

// Tools owns the MCP tool handlers and the single game session a stdio
// process runs at a time.
type Tools struct {
	Port          string // TCP port for the human player connection
	KingdomFile   string
	KingdomPreset string // default preset when start_game names none
	Seed          int64
	NoShuffle     bool
	MaxTurns      int
	DemoHands     bool
	Logger        *zap.Logger

	// Listen opens the human player's listener; defaults to TCP on Port.
	Listen func(port string) (net.Listener, error)

	mu     sync.Mutex
	active *GameSession
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(startGameTool(), t.handleStartGame)
	s.AddTool(chooseTool(), t.handleChoose)
	s.AddTool(answerYesNoTool(), t.handleAnswerYesNo)
	s.AddTool(getGameStateTool(), t.handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Dominion game against a human. Returns the initial state and the first pending decision. "+
			"The human player connects via `dominion-cli join --addr localhost:<port>` in a separate terminal. "+
			"This call blocks until the human connects."),
		mcp.WithNumber("agent_player", mcp.Required(), mcp.Description("Which player the agent is: 0 = goes first, 1 = goes second")),
		mcp.WithString("kingdom", mcp.Description("Kingdom preset name or 1-based number from the kingdom file; empty for the configured default or a random kingdom")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed; 0 for a random seed")),
	)
}

func chooseTool() mcp.Tool {
	return mcp.NewTool("choose",
		mcp.WithDescription("Answer the pending 'choose' decision. Give a card name or an option index as the query allows, or -1 to skip when allow_skip is true. "+
			"An illegal selection is reported as an InvalidChoice event and the same query is asked again."),
		mcp.WithString("selection", mcp.Required(), mcp.Description("Card name, option index, or -1")),
	)
}

func answerYesNoTool() mcp.Tool {
	return mcp.NewTool("answer_yes_no",
		mcp.WithDescription("Answer a yes/no question. Use this when the pending decision type is 'choose_yes_no'."),
		mcp.WithBoolean("answer", mcp.Required(), mcp.Description("true for yes, false for no")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the latest game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func (t *Tools) session() *GameSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Tools) setSession(s *GameSession) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = s
}

// Close ends any running session.
func (t *Tools) Close() {
	if sess := t.session(); sess != nil {
		sess.Close()
		t.setSession(nil)
	}
}

func (t *Tools) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

func (t *Tools) kingdom(preset string) ([]string, error) {
	if preset == "" {
		preset = t.KingdomPreset
	}
	if preset == "" {
		return nil, nil
	}
	if t.KingdomFile == "" {
		return nil, fmt.Errorf("kingdom %q requested but no kingdom file is configured", preset)
	}
	k, err := game.KingdomPreset(t.KingdomFile, preset)
	if err != nil {
		return nil, err
	}
	return k.Cards, nil
}

func (t *Tools) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.session() != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	agentPlayer := request.GetInt("agent_player", 0)
	if agentPlayer != 0 && agentPlayer != 1 {
		return mcp.NewToolResultError("agent_player must be 0 or 1"), nil
	}
	kingdom, err := t.kingdom(request.GetString("kingdom", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load kingdom: %v", err), nil
	}
	seed := int64(request.GetInt("seed", 0))
	if seed == 0 {
		seed = t.Seed
	}

	listen := t.Listen
	if listen == nil {
		listen = func(port string) (net.Listener, error) { return net.Listen("tcp", ":"+port) }
	}
	ln, err := listen(t.Port)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to listen on port %s: %v", t.Port, err), nil
	}
	t.logger().Info("waiting for human player", zap.String("addr", ln.Addr().String()))

	sess, err := NewGameSession(SessionConfig{
		Kingdom:     kingdom,
		Seed:        seed,
		NoShuffle:   t.NoShuffle,
		MaxTurns:    t.MaxTurns,
		DemoHands:   t.DemoHands,
		AgentPlayer: agentPlayer,
		Logger:      t.logger(),
	}, ln)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	t.setSession(sess)

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	t.finishIfOver(resp)
	resp.Port = t.Port

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// agentPending checks that the engine is waiting on the agent for want.
func (t *Tools) agentPending(want DecisionType) (*GameSession, *mcp.CallToolResult) {
	sess := t.session()
	if sess == nil {
		return nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	pending := sess.pending()
	if pending == nil {
		return nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Player != sess.agentPlayer {
		return nil, mcp.NewToolResultError("Waiting for human player to respond via their terminal.")
	}
	if pending.Type != want {
		return nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want)
	}
	return sess, nil
}

// respond hands answer to the waiting controller and returns the next decision.
func (t *Tools) respond(ctx context.Context, sess *GameSession, answer any) (*mcp.CallToolResult, error) {
	select {
	case sess.agentCtrl.responseCh <- answer:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	t.finishIfOver(resp)
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) finishIfOver(resp *ToolResponse) {
	if resp.GameOver {
		t.setSession(nil)
	}
}

func (t *Tools) handleChoose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := t.agentPending(DecisionChoose)
	if errResult != nil {
		return errResult, nil
	}
	selection := request.GetString("selection", "")
	if selection == "" {
		return mcp.NewToolResultError("selection must not be empty"), nil
	}
	return t.respond(ctx, sess, selection)
}

func (t *Tools) handleAnswerYesNo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := t.agentPending(DecisionChooseYesNo)
	if errResult != nil {
		return errResult, nil
	}
	return t.respond(ctx, sess, request.GetBool("answer", false))
}

func (t *Tools) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.session()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	resp := &ToolResponse{
		GameID: sess.game.State.ID,
		Events: sess.drainEvents(),
	}

	sess.mu.Lock()
	resp.GameOver = sess.gameOver
	resp.Winner = sess.winner
	resp.Result = sess.result
	pending := sess.currentPending
	sess.mu.Unlock()

	// The engine is parked on the pending decision, so its snapshot is current.
	if pending != nil {
		resp.State = pending.State
		if !resp.GameOver && pending.Type != DecisionGameOver {
			resp.Pending = &PendingView{
				Type:      pending.Type,
				ForPlayer: sess.playerLabel(pending.Player),
				Query:     pending.Query,
				Prompt:    pending.Prompt,
			}
		}
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}
