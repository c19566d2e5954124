package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/dannyallover/dominion/internal/log"
)

// ScriptedController is a PlayerController that answers from a predefined script.
// Used in tests to deterministically drive the game.
type ScriptedController struct {
	t    *testing.T
	name string

	selections []string
	pos        int

	yesNoChoices []bool
	yesNoPos     int

	// Every query seen, for assertions on prompts and options
	Queries []Query
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

// Add queues raw selections: names, indices or "-1".
func (sc *ScriptedController) Add(selections ...string) *ScriptedController {
	sc.selections = append(sc.selections, selections...)
	return sc
}

func (sc *ScriptedController) AddYesNo(answers ...bool) *ScriptedController {
	sc.yesNoChoices = append(sc.yesNoChoices, answers...)
	return sc
}

// Remaining reports how many scripted selections were not consumed.
func (sc *ScriptedController) Remaining() int {
	return len(sc.selections) - sc.pos
}

// Choose returns the next scripted selection. Once the script runs out it
// skips where skipping is allowed and fails otherwise.
func (sc *ScriptedController) Choose(ctx context.Context, state *GameState, q Query) (string, error) {
	sc.Queries = append(sc.Queries, q)
	if sc.pos >= len(sc.selections) {
		if q.AllowSkip {
			return SkipSelection, nil
		}
		return "", fmt.Errorf("[%s] script exhausted at %s query %q", sc.name, q.Kind, q.Prompt)
	}
	sel := sc.selections[sc.pos]
	sc.pos++
	return sel, nil
}

func (sc *ScriptedController) ChooseYesNo(ctx context.Context, state *GameState, prompt string) (bool, error) {
	if sc.yesNoPos >= len(sc.yesNoChoices) {
		return false, nil
	}
	answer := sc.yesNoChoices[sc.yesNoPos]
	sc.yesNoPos++
	return answer, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// --- Fixtures ---

// testKingdom is a fixed kingdom used by most tests.
var testKingdom = []string{
	"Cellar", "Moat", "Village", "Workshop", "Militia",
	"Remodel", "Smithy", "Throne Room", "Laboratory", "Witch",
}

// newTestGame builds a game that has been set up but not run: starting decks
// dealt, no hands drawn, turn 1 of P1 in the Action phase.
func newTestGame(t *testing.T, kingdom []string, p0, p1 *ScriptedController) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	g, err := NewGame(Config{Kingdom: kingdom, Logger: logger, Seed: 1, NoShuffle: true, MaxTurns: 100}, p0, p1)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.State.Turn = 1
	g.State.Phase = PhaseAction
	return g, logger
}

// makeInstances creates fresh instances for a fixture.
func makeInstances(gs *GameState, owner int, names ...string) []*CardInstance {
	out := make([]*CardInstance, 0, len(names))
	for _, n := range names {
		out = append(out, gs.CreateCardInstance(LookupCard(n), owner))
	}
	return out
}

// setHand replaces player's hand with the named cards, in order.
func setHand(gs *GameState, player int, names ...string) {
	gs.Players[player].Hand = NewPile(makeInstances(gs, player, names...)...)
}

// setDeck replaces player's deck. names[0] is drawn first.
func setDeck(gs *GameState, player int, names ...string) {
	cards := makeInstances(gs, player, names...)
	for i, j := 0, len(cards)-1; i < j; i, j = i+1, j-1 {
		cards[i], cards[j] = cards[j], cards[i]
	}
	gs.Players[player].Deck = NewPile(cards...)
}

// setDiscard replaces player's discard pile, names[len-1] on top.
func setDiscard(gs *GameState, player int, names ...string) {
	gs.Players[player].Discard = NewPile(makeInstances(gs, player, names...)...)
}

// play plays the named card from the turn player's hand.
func play(t *testing.T, g *Game, name string) {
	t.Helper()
	p := g.State.CurrentPlayer()
	idx := p.Hand.IndexOf(name)
	if idx < 0 {
		t.Fatalf("%s not in hand %v", name, p.Hand.Names())
	}
	if err := g.playAction(g.State.TurnPlayer, idx); err != nil {
		t.Fatalf("play %s: %v", name, err)
	}
}

func countName(p *Pile, name string) int {
	return p.Counts()[name]
}

// checkConservation fails if the game's card count moved away from want.
func checkConservation(t *testing.T, gs *GameState, want int) {
	t.Helper()
	if got := gs.CardCount(); got != want {
		t.Errorf("card count = %d, want %d", got, want)
	}
	seen := make(map[int]bool)
	piles := []*Pile{gs.Trash}
	for _, p := range gs.Players {
		piles = append(piles, p.Deck, p.Hand, p.Discard, p.InPlay)
	}
	for _, sp := range gs.Kingdom {
		piles = append(piles, sp.Pile)
	}
	for _, pile := range piles {
		for _, c := range pile.Cards() {
			if seen[c.ID] {
				t.Errorf("card %s#%d is in two piles", c.Name(), c.ID)
			}
			seen[c.ID] = true
		}
	}
}

// runGameToCompletion runs a game and returns the logger for inspection.
func runGameToCompletion(t *testing.T, cfg Config, p0, p1 *ScriptedController) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.NoShuffle = true // deterministic tests
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 100
	}

	g, err := NewGame(cfg, p0, p1)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v\nLog:\n%s", err, log.FormatAll(logger.Events()))
	}
	return g, logger
}
