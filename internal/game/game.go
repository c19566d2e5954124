package game

import (
	"context"
	"fmt"

	"github.com/dannyallover/dominion/internal/log"
)

// DefaultMaxTurns bounds a game whose players never end it.
const DefaultMaxTurns = 200

// Config holds configuration for creating a new game.
type Config struct {
	Kingdom   []string  // ten kingdom card names; empty picks a random kingdom
	Names     [2]string // display names, default "P1"/"P2"
	Logger    log.EventLogger
	Seed      int64 // RNG seed (0 for random)
	NoShuffle bool  // skip deck shuffles (for deterministic tests)
	MaxTurns  int   // stop after this many turns (0 = DefaultMaxTurns)
	DemoHands bool  // add the demo cards to both opening hands
}

// Game orchestrates an entire game between two players.
type Game struct {
	State       *GameState
	Controllers [2]PlayerController
	Logger      log.EventLogger
	ctx         context.Context
	maxTurns    int
	demoHands   bool
}

// NewGame builds the supply and both starting decks (7 Copper, 3 Estate).
func NewGame(cfg Config, p0, p1 PlayerController) (*Game, error) {
	names := cfg.Names
	for i := range names {
		if names[i] == "" {
			names[i] = fmt.Sprintf("P%d", i+1)
		}
	}
	gs := NewGameState(cfg.Seed, names)
	gs.noShuffle = cfg.NoShuffle
	if err := gs.GenerateKingdom(cfg.Kingdom); err != nil {
		return nil, err
	}

	for p := 0; p < 2; p++ {
		deck := gs.Players[p].Deck
		for i := 0; i < StartingCoppers; i++ {
			deck.InsertTop(gs.CreateCardInstance(Copper(), p))
		}
		for i := 0; i < StartingEstates; i++ {
			deck.InsertTop(gs.CreateCardInstance(Estate(), p))
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}

	return &Game{
		State:       gs,
		Controllers: [2]PlayerController{p0, p1},
		Logger:      logger,
		ctx:         context.Background(),
		maxTurns:    maxTurns,
		demoHands:   cfg.DemoHands,
	}, nil
}

// Run executes the entire game loop. Returns the winner (0, 1, or -1 for draw).
func (g *Game) Run(ctx context.Context) (int, error) {
	g.ctx = ctx
	gs := g.State
	if gs.Over {
		return gs.Winner, ErrGameOver
	}

	for p := 0; p < 2; p++ {
		if !gs.noShuffle {
			gs.Players[p].Deck.Shuffle(gs.rng)
		}
		g.drawCards(p, InitialHandSize)
	}
	if g.demoHands {
		g.dealDemoCards()
	}

	for !gs.Over {
		if gs.Turn >= g.maxTurns {
			g.endGame(fmt.Sprintf("Turn limit reached (%d turns)", g.maxTurns))
			break
		}
		if err := g.runTurn(); err != nil {
			return gs.Winner, err
		}
		if err := g.ctx.Err(); err != nil {
			return -1, err
		}
	}

	return gs.Winner, nil
}

// dealDemoCards puts the demo opening cards straight into both hands.
func (g *Game) dealDemoCards() {
	demo := [2][]func() *Card{
		{Village, Mine, Militia, Gold},
		{Moneylender, Market, Moat, Gold},
	}
	for p, ctors := range demo {
		for _, ctor := range ctors {
			g.State.Players[p].Hand.InsertTop(g.State.CreateCardInstance(ctor(), p))
		}
	}
}

// runTurn executes a single turn for the current turn player and then checks
// the end condition.
func (g *Game) runTurn() error {
	gs := g.State
	gs.Turn++

	g.log(log.NewTurnEvent(gs.Turn, gs.TurnPlayer))

	if err := g.actionPhase(); err != nil {
		return err
	}
	if err := g.treasurePhase(); err != nil {
		return err
	}
	if err := g.buyPhase(); err != nil {
		return err
	}
	g.cleanupPhase()

	if IsGameOver(gs.Kingdom) {
		reason := fmt.Sprintf("%d supply piles empty", EmptySupplyCount(gs.Kingdom))
		if sp := gs.Supply("Province"); sp != nil && sp.Empty() {
			reason = "Province pile empty"
		}
		g.endGame(reason)
		return nil
	}

	gs.TurnPlayer = gs.Opponent(gs.TurnPlayer)
	return nil
}

func (g *Game) enterPhase(phase Phase) {
	g.State.Phase = phase
	g.log(log.NewPhaseChangeEvent(g.State.Turn, g.State.TurnPlayer, phase.String()))
}

// actionPhase plays Action cards while actions remain and the hand holds one.
func (g *Game) actionPhase() error {
	gs := g.State
	g.enterPhase(PhaseAction)
	tp := gs.TurnPlayer
	p := gs.Players[tp]

	for p.Actions > 0 && p.Hand.IndexWhere((*Card).IsActionClass) >= 0 {
		opt, err := g.chooseFromHand(tp, QueryPlayAction,
			fmt.Sprintf("Play an action card (%d action(s) left), -1 to end the phase", p.Actions),
			true, true, FilterAction)
		if err != nil {
			return err
		}
		if opt == nil {
			break
		}
		if err := g.playAction(tp, opt.Index); err != nil {
			return err
		}
	}
	return nil
}

// playAction moves the hand card at idx into play, spends an action, resolves
// the card and routes it to Trash or Discard.
func (g *Game) playAction(player, idx int) error {
	gs := g.State
	p := gs.Players[player]
	ci, err := p.Hand.MoveAt(idx, p.InPlay)
	if err != nil {
		return err
	}
	p.Actions--
	g.log(log.NewPlayEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))

	trashed, err := g.playBody(player, ci)
	if err != nil {
		return err
	}
	return g.routePlayed(player, ci, trashed)
}

// playBody applies a card's bonuses and then, unless an opposing Reaction
// blocks an Attack, dispatches its effect.
func (g *Game) playBody(player int, ci *CardInstance) (bool, error) {
	gs := g.State
	p := gs.Players[player]
	c := ci.Card

	p.Actions += c.PlusActions
	p.Buys += c.PlusBuys
	g.drawCards(player, c.PlusCards)
	if c.PlusCoins != 0 {
		g.addCoins(player, c.PlusCoins, c.Name)
	}

	if c.Effect == EffectNone {
		return false, nil
	}
	if c.IsAttack() && gs.Players[gs.Opponent(player)].HasReaction() {
		g.log(log.NewAttackBlockedEvent(gs.Turn, gs.Phase.String(), player, c.Name))
		return false, nil
	}
	return g.resolve(c.Effect, player)
}

// routePlayed moves a resolved card out of play.
func (g *Game) routePlayed(player int, ci *CardInstance, trashed bool) error {
	gs := g.State
	p := gs.Players[player]
	if trashed {
		if err := p.InPlay.MoveCard(ci, gs.Trash); err != nil {
			return err
		}
		g.log(log.NewTrashEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
		return nil
	}
	return p.InPlay.MoveCard(ci, p.Discard)
}

// treasurePhase plays Treasures one at a time. Each adds its coins and goes
// straight to the discard pile.
func (g *Game) treasurePhase() error {
	gs := g.State
	g.enterPhase(PhaseTreasure)
	tp := gs.TurnPlayer
	p := gs.Players[tp]

	for p.Hand.IndexWhere((*Card).IsTreasure) >= 0 {
		opt, err := g.chooseFromHand(tp, QueryPlayTreasure,
			fmt.Sprintf("Play a treasure (%d coin(s)), -1 to end the phase", p.Coins),
			true, true, FilterTreasure)
		if err != nil {
			return err
		}
		if opt == nil {
			break
		}
		ci, err := p.Hand.MoveAt(opt.Index, p.Discard)
		if err != nil {
			return err
		}
		coins := ci.Card.PlusCoins
		if ci.Name() == "Silver" && !p.silverPlayed {
			p.silverPlayed = true
			coins += p.merchantsPlayed
		}
		p.Coins += coins
		g.log(log.NewPlayTreasureEvent(gs.Turn, gs.Phase.String(), tp, ci.Name(), coins))
	}
	return nil
}

// buyPhase buys supply cards while buys remain.
func (g *Game) buyPhase() error {
	gs := g.State
	g.enterPhase(PhaseBuy)
	tp := gs.TurnPlayer
	p := gs.Players[tp]

	for p.Buys > 0 {
		q := Query{
			Kind:      QueryBuy,
			Player:    tp,
			Prompt:    fmt.Sprintf("Buy a card (%d coin(s), %d buy(s)), -1 to end the phase", p.Coins, p.Buys),
			Options:   supplyOptions(gs.Kingdom),
			AllowSkip: true,
			ByName:    true,
			ByIndex:   true,
			MaxCost:   p.Coins,
		}
		opt, err := g.choose(q, func(o Option) error {
			sp := gs.Kingdom[o.Index]
			if sp.Empty() {
				return invalidChoice(sp.Name() + " pile is empty")
			}
			if sp.Card.Cost > p.Coins {
				return invalidChoice(fmt.Sprintf("%s costs %d, you have %d", sp.Name(), sp.Card.Cost, p.Coins))
			}
			return nil
		})
		if err != nil {
			return err
		}
		if opt == nil {
			break
		}
		sp := gs.Kingdom[opt.Index]
		p.Coins -= sp.Card.Cost
		if _, err := sp.MoveTopTo(p.Discard); err != nil {
			return err
		}
		p.Buys--
		g.log(log.NewBuyEvent(gs.Turn, gs.Phase.String(), tp, sp.Name(), sp.Card.Cost))
	}
	return nil
}

// cleanupPhase discards hand and play area, resets counters and draws a new hand.
func (g *Game) cleanupPhase() {
	gs := g.State
	g.enterPhase(PhaseCleanup)
	tp := gs.TurnPlayer
	p := gs.Players[tp]

	p.Discard.TakeAllFrom(p.Hand)
	p.Discard.TakeAllFrom(p.InPlay)
	p.ResetTurn()
	g.drawCards(tp, InitialHandSize)
}

// endGame scores both players and records the result.
func (g *Game) endGame(reason string) {
	gs := g.State
	gs.decideWinner()
	scores := gs.Scores()
	if gs.Winner >= 0 {
		gs.Result = fmt.Sprintf("%s wins %d-%d (%s)", gs.Players[gs.Winner].Name, scores[gs.Winner], scores[1-gs.Winner], reason)
	} else {
		gs.Result = fmt.Sprintf("Draw at %d-%d (%s)", scores[0], scores[1], reason)
	}
	g.log(log.NewGameOverEvent(gs.Turn, gs.Winner, scores))
}

// --- Zone primitives ---

// drawOne draws the top card of player's deck into hand, shuffling the
// discard pile in first when the deck is empty. Returns nil if both are empty.
func (g *Game) drawOne(player int) *CardInstance {
	gs := g.State
	p := gs.Players[player]
	shuffled, ok := gs.RefillDeckIfEmpty(player)
	if shuffled {
		g.log(log.NewShuffleEvent(gs.Turn, gs.Phase.String(), player))
	}
	if !ok {
		return nil
	}
	ci, err := p.Deck.MoveTopTo(p.Hand)
	if err != nil {
		return nil
	}
	g.log(log.NewDrawEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
	return ci
}

// drawCards draws up to n cards and returns how many were drawn.
func (g *Game) drawCards(player, n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if g.drawOne(player) == nil {
			break
		}
		drawn++
	}
	return drawn
}

// drawNoRefill draws from the deck only; an empty deck draws nothing.
func (g *Game) drawNoRefill(player int) *CardInstance {
	gs := g.State
	p := gs.Players[player]
	ci, err := p.Deck.MoveTopTo(p.Hand)
	if err != nil {
		return nil
	}
	g.log(log.NewDrawEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
	return ci
}

// revealTop moves player's top deck card (refilling first) onto dst.
func (g *Game) revealTop(player int, dst *Pile) *CardInstance {
	gs := g.State
	p := gs.Players[player]
	shuffled, ok := gs.RefillDeckIfEmpty(player)
	if shuffled {
		g.log(log.NewShuffleEvent(gs.Turn, gs.Phase.String(), player))
	}
	if !ok {
		return nil
	}
	ci, err := p.Deck.MoveTopTo(dst)
	if err != nil {
		return nil
	}
	g.log(log.NewRevealEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
	return ci
}

// gain moves the top card of sp onto dst for player. zone names dst in the log.
func (g *Game) gain(player int, sp *SupplyPile, dst *Pile, zone string) (*CardInstance, error) {
	gs := g.State
	ci, err := sp.MoveTopTo(dst)
	if err != nil {
		return nil, err
	}
	g.log(log.NewGainEvent(gs.Turn, gs.Phase.String(), player, ci.Name(), zone))
	return ci, nil
}

// gainNamed gains from the named supply pile if it has cards left.
func (g *Game) gainNamed(player int, name string, dst *Pile, zone string) error {
	sp := g.State.Supply(name)
	if sp == nil || sp.Empty() {
		return nil
	}
	_, err := g.gain(player, sp, dst, zone)
	return err
}

func (g *Game) discardAt(player int, src *Pile, idx int) error {
	gs := g.State
	ci, err := src.MoveAt(idx, gs.Players[player].Discard)
	if err != nil {
		return err
	}
	g.log(log.NewDiscardEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
	return nil
}

func (g *Game) trashAt(player int, src *Pile, idx int) (*CardInstance, error) {
	gs := g.State
	ci, err := src.MoveAt(idx, gs.Trash)
	if err != nil {
		return nil, err
	}
	g.log(log.NewTrashEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
	return ci, nil
}

func (g *Game) topdeckAt(player int, src *Pile, idx int) error {
	gs := g.State
	ci, err := src.MoveAt(idx, gs.Players[player].Deck)
	if err != nil {
		return err
	}
	g.log(log.NewTopdeckEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
	return nil
}

func (g *Game) addCoins(player, delta int, reason string) {
	gs := g.State
	gs.Players[player].Coins += delta
	g.log(log.NewCoinsEvent(gs.Turn, gs.Phase.String(), player, delta, reason))
}

// log records an event and forwards it to both seats.
func (g *Game) log(event log.GameEvent) {
	g.Logger.Log(event)
	// Notify controllers (ignore errors for notifications)
	for i := 0; i < 2; i++ {
		_ = g.Controllers[i].Notify(g.ctx, event)
	}
}
