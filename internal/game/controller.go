package game

import (
	"context"

	"github.com/dannyallover/dominion/internal/log"
)

// PlayerController is the decision oracle a seat implements: console over TCP,
// an MCP client, a browser, or a script in tests.
type PlayerController interface {
	// Choose answers a query with a raw selection: a card name, a decimal
	// index into Query.Options, or "-1" to skip. The engine validates it and
	// asks again when it is not legal.
	Choose(ctx context.Context, state *GameState, q Query) (string, error)

	// ChooseYesNo asks the player a yes/no question (e.g., "play the revealed Village?").
	ChooseYesNo(ctx context.Context, state *GameState, prompt string) (bool, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// QueryKind says what a selection will be used for.
type QueryKind int

const (
	QueryPlayAction QueryKind = iota
	QueryPlayTreasure
	QueryBuy
	QueryGain
	QueryDiscard
	QueryTrash
	QueryTopdeck
	QueryReplay
)

func (k QueryKind) String() string {
	switch k {
	case QueryPlayAction:
		return "play_action"
	case QueryPlayTreasure:
		return "play_treasure"
	case QueryBuy:
		return "buy"
	case QueryGain:
		return "gain"
	case QueryDiscard:
		return "discard"
	case QueryTrash:
		return "trash"
	case QueryTopdeck:
		return "topdeck"
	case QueryReplay:
		return "replay"
	default:
		return "unknown"
	}
}

// CardFilter is a card-type rule on a query. The empty filter allows any card.
type CardFilter string

const (
	FilterAny      CardFilter = ""
	FilterAction   CardFilter = "action"
	FilterTreasure CardFilter = "treasure"
)

// Allows reports whether c passes the filter.
func (f CardFilter) Allows(c *Card) bool {
	switch f {
	case FilterAction:
		return c.IsActionClass()
	case FilterTreasure:
		return c.IsTreasure()
	default:
		return true
	}
}

func (f CardFilter) reject(name string) InvalidChoiceError {
	switch f {
	case FilterAction:
		return invalidChoice(name + " is not an action card")
	case FilterTreasure:
		return invalidChoice(name + " is not a treasure")
	default:
		return invalidChoice(name + " is not allowed here")
	}
}

// Option is one entry of a query's domain. Options list the whole zone being
// chosen from; MaxCost and Filter say which entries are legal.
type Option struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Cost  int    `json:"cost"`
	Types string `json:"types"`
	Count int    `json:"count,omitempty"` // supply piles only
}

// Query describes one decision asked of a seat.
type Query struct {
	Kind      QueryKind  `json:"kind"`
	Player    int        `json:"player"`
	Prompt    string     `json:"prompt"`
	Options   []Option   `json:"options"`
	AllowSkip bool       `json:"allow_skip"`
	ByName    bool       `json:"by_name"`
	ByIndex   bool       `json:"by_index"`
	MaxCost   int        `json:"max_cost"` // -1 if unbounded
	Filter    CardFilter `json:"filter,omitempty"`
}

// pileOptions lists every card of a pile as an option.
func pileOptions(p *Pile) []Option {
	opts := make([]Option, 0, p.Size())
	for i, c := range p.cards {
		opts = append(opts, Option{Index: i, Name: c.Card.Name, Cost: c.Card.Cost, Types: c.Card.Types.String()})
	}
	return opts
}

// supplyOptions lists every supply pile, empty ones included.
func supplyOptions(kingdom []*SupplyPile) []Option {
	opts := make([]Option, 0, len(kingdom))
	for i, sp := range kingdom {
		opts = append(opts, Option{Index: i, Name: sp.Name(), Cost: sp.Card.Cost, Types: sp.Card.Types.String(), Count: sp.Size()})
	}
	return opts
}
