package net

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dannyallover/dominion/internal/game"
	"github.com/dannyallover/dominion/internal/log"
)

func newState(t *testing.T) *game.GameState {
	t.Helper()
	gs := game.NewGameState(1, [2]string{"Host", "Guest"})
	require.NoError(t, gs.GenerateKingdom(nil))
	return gs
}

func TestNetworkControllerChoose(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	nc := NewNetworkController(server, 1)
	gs := newState(t)
	q := game.Query{Kind: game.QueryBuy, Player: 1, Prompt: "Buy a card", AllowSkip: true, ByName: true, MaxCost: 3}

	done := make(chan error, 1)
	go func() {
		dec := json.NewDecoder(client)
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			done <- err
			return
		}
		assert.Equal(t, MsgChoose, msg.Type)
		assert.Equal(t, "Buy a card", msg.Query.Prompt)
		assert.Equal(t, game.QueryBuy, msg.Query.Kind)
		assert.Equal(t, "Guest", msg.State.Player)
		assert.Equal(t, 1, msg.State.Seat)
		done <- json.NewEncoder(client).Encode(ClientMessage{Type: MsgSelection, Selection: "Silver"})
	}()

	sel, err := nc.Choose(context.Background(), gs, q)
	require.NoError(t, err)
	assert.Equal(t, "Silver", sel)
	require.NoError(t, <-done)
}

func TestNetworkControllerYesNo(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	nc := NewNetworkController(server, 0)
	go func() {
		var msg ServerMessage
		_ = json.NewDecoder(client).Decode(&msg)
		_ = json.NewEncoder(client).Encode(ClientMessage{Type: MsgYesNo, Answer: true})
	}()

	ok, err := nc.ChooseYesNo(context.Background(), newState(t), "Trash a Copper?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNetworkControllerRejectsWrongMessage(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	nc := NewNetworkController(server, 0)
	go func() {
		var msg ServerMessage
		_ = json.NewDecoder(client).Decode(&msg)
		_ = json.NewEncoder(client).Encode(ClientMessage{Type: MsgYesNo, Answer: true})
	}()

	_, err := nc.Choose(context.Background(), newState(t), game.Query{Prompt: "x"})
	assert.Error(t, err)
}

func TestNetworkControllerCancelled(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewNetworkController(server, 0).Choose(ctx, newState(t), game.Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNotifySendsEventView(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	nc := NewNetworkController(server, 0)
	got := make(chan ServerMessage, 1)
	go func() {
		var msg ServerMessage
		_ = json.NewDecoder(client).Decode(&msg)
		got <- msg
	}()

	require.NoError(t, nc.Notify(context.Background(), log.NewGainEvent(4, "Action", 1, "Curse", "discard")))
	msg := <-got
	assert.Equal(t, MsgNotify, msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(t, "Gain", msg.Event.Type)
	assert.Equal(t, "Curse", msg.Event.Card)
	assert.Equal(t, "P2 gains Curse to discard", msg.Event.Details)
}

func TestClientREPL(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	var out bytes.Buffer
	c := NewClient(client, strings.NewReader("\nCopper\ny\n"), &out, "P1")

	snap := newState(t).SnapshotFor(0)
	replies := make(chan ClientMessage, 2)
	go func() {
		enc := json.NewEncoder(server)
		dec := json.NewDecoder(server)
		q := game.Query{
			Kind:      game.QueryPlayTreasure,
			Prompt:    "Play a treasure",
			Options:   []game.Option{{Index: 0, Name: "Copper", Types: "Treasure"}},
			AllowSkip: true,
			ByName:    true,
		}
		_ = enc.Encode(ServerMessage{Type: MsgNotify, Event: NewEventView(log.NewTurnEvent(1, 0))})
		_ = enc.Encode(ServerMessage{Type: MsgChoose, Query: &q, State: &snap})
		var m ClientMessage
		_ = dec.Decode(&m)
		replies <- m
		_ = enc.Encode(ServerMessage{Type: MsgChooseYesNo, Prompt: "Play it?"})
		_ = dec.Decode(&m)
		replies <- m
		_ = enc.Encode(ServerMessage{Type: MsgGameOver, Winner: -1, Result: "Draw at 3-3"})
	}()

	require.NoError(t, c.RunREPL(context.Background()))

	sel := <-replies
	assert.Equal(t, MsgSelection, sel.Type)
	assert.Equal(t, "Copper", sel.Selection)
	yn := <-replies
	assert.Equal(t, MsgYesNo, yn.Type)
	assert.True(t, yn.Answer)

	text := out.String()
	assert.Contains(t, text, "=== Turn 1 (P1) ===")
	assert.Contains(t, text, "Host's turn")
	assert.Contains(t, text, "[0] Copper")
	assert.Contains(t, text, "Enter a name or -1")
	assert.Contains(t, text, "Draw at 3-3")
}

func TestClientInputClosed(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c := NewClient(client, strings.NewReader(""), io.Discard, "P1")
	go func() {
		q := game.Query{Prompt: "Buy"}
		_ = json.NewEncoder(server).Encode(ServerMessage{Type: MsgChoose, Query: &q})
	}()
	assert.ErrorIs(t, c.RunREPL(context.Background()), ErrInputClosed)
}

func TestServePlaysToTurnLimit(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s := &Server{
		HostName:  "Host",
		Seed:      1,
		NoShuffle: true,
		MaxTurns:  2,
		Logger:    zaptest.NewLogger(t),
		In:        strings.NewReader(strings.Repeat("-1\n", 50)),
		Out:       io.Discard,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Serve(ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)
	require.NoError(t, enc.Encode(ClientMessage{Type: MsgJoin, Name: "Guest"}))

	var result string
	for result == "" {
		var msg ServerMessage
		require.NoError(t, dec.Decode(&msg))
		switch msg.Type {
		case MsgChoose:
			sel := "0"
			if msg.Query.AllowSkip {
				sel = game.SkipSelection
			}
			require.NoError(t, enc.Encode(ClientMessage{Type: MsgSelection, Selection: sel}))
		case MsgChooseYesNo:
			require.NoError(t, enc.Encode(ClientMessage{Type: MsgYesNo}))
		case MsgGameOver:
			result = msg.Result
		}
	}

	assert.Equal(t, "Draw at 3-3 (Turn limit reached (2 turns))", result)
	require.NoError(t, <-serveErr)
}
