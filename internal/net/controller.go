package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/dannyallover/dominion/internal/game"
	"github.com/dannyallover/dominion/internal/log"
)

// NetworkController implements game.PlayerController over a TCP connection.
// Selections are forwarded raw; the engine validates them.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player int // which seat this controller is (0 or 1)
	mu     sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, player int) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// NewNetworkControllerWithDecoder reuses dec, which has already read the
// join handshake from conn and may hold buffered bytes.
func NewNetworkControllerWithDecoder(conn net.Conn, dec *json.Decoder, player int) *NetworkController {
	nc := NewNetworkController(conn, player)
	nc.dec = dec
	return nc
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message of the wanted type. Must be called with mu held.
func (nc *NetworkController) recv(want string) (ClientMessage, error) {
	var msg ClientMessage
	if err := nc.dec.Decode(&msg); err != nil {
		return msg, err
	}
	if msg.Type != want {
		return msg, fmt.Errorf("expected %q message, got %q", want, msg.Type)
	}
	return msg, nil
}

// Choose implements game.PlayerController.
func (nc *NetworkController) Choose(ctx context.Context, state *game.GameState, q game.Query) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	nc.mu.Lock()
	defer nc.mu.Unlock()

	snap := state.SnapshotFor(nc.player)
	if err := nc.send(ServerMessage{Type: MsgChoose, Query: &q, State: &snap}); err != nil {
		return "", fmt.Errorf("send choose: %w", err)
	}

	resp, err := nc.recv(MsgSelection)
	if err != nil {
		return "", fmt.Errorf("recv selection: %w", err)
	}
	return resp.Selection, nil
}

// ChooseYesNo implements game.PlayerController.
func (nc *NetworkController) ChooseYesNo(ctx context.Context, state *game.GameState, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	nc.mu.Lock()
	defer nc.mu.Unlock()

	snap := state.SnapshotFor(nc.player)
	if err := nc.send(ServerMessage{Type: MsgChooseYesNo, Prompt: prompt, State: &snap}); err != nil {
		return false, fmt.Errorf("send choose_yes_no: %w", err)
	}

	resp, err := nc.recv(MsgYesNo)
	if err != nil {
		return false, fmt.Errorf("recv yes_no: %w", err)
	}
	return resp.Answer, nil
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(winner int, result string) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgGameOver, Winner: winner, Result: result})
}

// Notify implements game.PlayerController.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgNotify, Event: NewEventView(event)})
}

// NewEventView converts a game event for the wire.
func NewEventView(event log.GameEvent) *EventView {
	return &EventView{
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}
