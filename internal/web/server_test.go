package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/dannyallover/dominion/internal/game"
	domnet "github.com/dannyallover/dominion/internal/net"
)

func TestIndex(t *testing.T) {
	srv := httptest.NewServer(NewServer("", zaptest.NewLogger(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp2, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestCardsEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewServer("", zaptest.NewLogger(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/cards")
	require.NoError(t, err)
	defer resp.Body.Close()

	var cards []CardInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cards))
	assert.Len(t, cards, len(game.CardRegistry))

	byName := make(map[string]CardInfo)
	for _, c := range cards {
		byName[c.Name] = c
	}
	smithy := byName["Smithy"]
	assert.Equal(t, 4, smithy.Cost)
	assert.Equal(t, 3, smithy.PlusCards)
	assert.True(t, smithy.Kingdom)
	assert.False(t, byName["Copper"].Kingdom)
	assert.Equal(t, 6, byName["Province"].Points)

	for i := 1; i < len(cards); i++ {
		assert.LessOrEqual(t, cards[i-1].Cost, cards[i].Cost, "cards sorted by cost")
	}
}

func TestKingdomsEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kingdoms.yaml")
	yaml := "kingdoms:\n  - name: First Game\n    cards: [Cellar, Market, Merchant, Militia, Mine, Moat, Remodel, Smithy, Village, Workshop]\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	srv := httptest.NewServer(NewServer(path, zaptest.NewLogger(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/kingdoms")
	require.NoError(t, err)
	defer resp.Body.Close()

	var kingdoms []KingdomInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&kingdoms))
	require.Len(t, kingdoms, 1)
	assert.Equal(t, 1, kingdoms[0].Number)
	assert.Equal(t, "First Game", kingdoms[0].Name)
	assert.Len(t, kingdoms[0].Cards, game.KingdomSize)
}

func TestKingdomsEndpointWithoutFile(t *testing.T) {
	srv := httptest.NewServer(NewServer("", zaptest.NewLogger(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/kingdoms")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var kingdoms []KingdomInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&kingdoms))
	assert.Empty(t, kingdoms)
}

func TestKingdomsEndpointBadFile(t *testing.T) {
	srv := httptest.NewServer(NewServer(filepath.Join(t.TempDir(), "missing.yaml"), zaptest.NewLogger(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/kingdoms")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestWebSocketProxy(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// Fake game host: expects a join, asks one question, then ends the game.
	gotJoin := make(chan domnet.ClientMessage, 1)
	gotSelection := make(chan domnet.ClientMessage, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		dec := json.NewDecoder(conn)
		enc := json.NewEncoder(conn)

		var join domnet.ClientMessage
		_ = dec.Decode(&join)
		gotJoin <- join

		q := game.Query{Kind: game.QueryBuy, Prompt: "Buy a card", AllowSkip: true}
		_ = enc.Encode(domnet.ServerMessage{Type: domnet.MsgChoose, Query: &q})
		var sel domnet.ClientMessage
		_ = dec.Decode(&sel)
		gotSelection <- sel
		_ = enc.Encode(domnet.ServerMessage{Type: domnet.MsgGameOver, Result: "P1 wins 6-3"})
	}()

	srv := httptest.NewServer(NewServer("", zap.NewNop()))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.CloseNow()

	connect, _ := json.Marshal(connectMessage{Type: "connect", Addr: ln.Addr().String(), Name: "Browser"})
	require.NoError(t, ws.Write(ctx, websocket.MessageText, connect))

	join := <-gotJoin
	assert.Equal(t, domnet.MsgJoin, join.Type)
	assert.Equal(t, "Browser", join.Name)

	_, data, err := ws.Read(ctx)
	require.NoError(t, err)
	var msg domnet.ServerMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, domnet.MsgChoose, msg.Type)
	assert.Equal(t, "Buy a card", msg.Query.Prompt)

	reply, _ := json.Marshal(domnet.ClientMessage{Type: domnet.MsgSelection, Selection: "-1"})
	require.NoError(t, ws.Write(ctx, websocket.MessageText, reply))
	assert.Equal(t, "-1", (<-gotSelection).Selection)

	_, data, err = ws.Read(ctx)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, domnet.MsgGameOver, msg.Type)
	assert.Equal(t, "P1 wins 6-3", msg.Result)
}

func TestWebSocketProxyBrowserClose(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// Fake game host that never writes: only the browser going away can end the seat.
	joined := make(chan struct{})
	seatErr := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			seatErr <- err
			return
		}
		defer conn.Close()
		dec := json.NewDecoder(conn)
		var join domnet.ClientMessage
		if err := dec.Decode(&join); err != nil {
			seatErr <- err
			return
		}
		close(joined)
		var next domnet.ClientMessage
		seatErr <- dec.Decode(&next)
	}()

	srv := httptest.NewServer(NewServer("", zap.NewNop()))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)

	connect, _ := json.Marshal(connectMessage{Type: "connect", Addr: ln.Addr().String(), Name: "Browser"})
	require.NoError(t, ws.Write(ctx, websocket.MessageText, connect))

	select {
	case <-joined:
	case <-ctx.Done():
		t.Fatal("host never saw the join")
	}

	ws.CloseNow()

	select {
	case err := <-seatErr:
		assert.Error(t, err, "host should see the seat close once the browser leaves")
	case <-ctx.Done():
		t.Fatal("TCP seat stayed open after the browser closed")
	}
}

func TestWebSocketProxyBadAddress(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	srv := httptest.NewServer(NewServer("", zap.NewNop()))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.CloseNow()

	connect, _ := json.Marshal(connectMessage{Type: "connect", Addr: addr})
	require.NoError(t, ws.Write(ctx, websocket.MessageText, connect))

	_, data, err := ws.Read(ctx)
	require.NoError(t, err)
	var msg map[string]string
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "error", msg["type"])
	assert.Contains(t, msg["result"], "Could not connect")
}
