package net

import "github.com/dannyallover/dominion/internal/game"

// Message types for the JSON protocol over TCP. Each message is one JSON
// value; json.Encoder terminates them with a newline.

const (
	MsgNotify      = "notify"
	MsgChoose      = "choose"
	MsgChooseYesNo = "choose_yes_no"
	MsgGameOver    = "game_over"

	MsgJoin      = "join"
	MsgSelection = "selection"
	MsgYesNo     = "yes_no"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose" and "choose_yes_no"
	Query  *game.Query    `json:"query,omitempty"`
	State  *game.Snapshot `json:"state,omitempty"`
	Prompt string         `json:"prompt,omitempty"`

	// For "game_over"
	Winner int    `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "selection": a card name, an option index, or "-1"
	Selection string `json:"selection,omitempty"`

	// For "yes_no"
	Answer bool `json:"answer,omitempty"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`
}
