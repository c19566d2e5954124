package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1, 0))
	l.Log(NewDrawEvent(1, "Action", 0, "Copper"))
	l.Log(NewBuyEvent(1, "Buy", 0, "Silver", 3))

	events := l.Events()
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.Seq)
	}
	assert.Len(t, l.EventsOfType(EventDraw), 1)
	assert.Equal(t, EventBuy, l.LastEvent().Type)
	assert.Equal(t, "P1 buys Silver for 3", l.LastEvent().Details)
}

func TestMemoryLoggerEmptyLastEvent(t *testing.T) {
	assert.Equal(t, GameEvent{}, NewMemoryLogger().LastEvent())
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewPlayEvent(3, "Action", 1, "Smithy"))
	l.Log(NewGameOverEvent(3, -1, [2]int{5, 5}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "T3  Action    | P2 plays Smithy", lines[0])
	assert.Contains(t, lines[1], "draw at 5-5")
	assert.Len(t, l.Events(), 2)
}

func TestZapLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	l.Log(NewTrashEvent(2, "Action", 0, "Estate"))
	l.Log(NewGameOverEvent(9, 1, [2]int{3, 12}))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "P1 trashes Estate", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Estate", fields["card"])
	assert.Equal(t, "Trash", fields["type"])
	assert.EqualValues(t, 2, fields["turn"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "Game over: P2 wins 12-3", entries[1].Message)
	assert.Len(t, l.Events(), 2)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "AttackBlocked", EventAttackBlocked.String())
	assert.Equal(t, "GameOver", EventGameOver.String())
	assert.Equal(t, "Unknown", EventType(99).String())
}
