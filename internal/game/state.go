package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	InitialHandSize = 5
	StartingCoppers = 7
	StartingEstates = 3

	StartingActions = 1
	StartingBuys    = 1
	StartingCoins   = 0
)

// Player represents one player's zones and per-turn counters.
type Player struct {
	Name    string
	Hand    *Pile
	Deck    *Pile // top of deck is the last element
	Discard *Pile
	InPlay  *Pile

	Actions int
	Buys    int
	Coins   int

	// Merchant bookkeeping for the current turn
	merchantsPlayed int
	silverPlayed    bool
}

// NewPlayer creates a player with empty zones and fresh turn counters.
func NewPlayer(name string) *Player {
	p := &Player{
		Name:    name,
		Hand:    NewPile(),
		Deck:    NewPile(),
		Discard: NewPile(),
		InPlay:  NewPile(),
	}
	p.ResetTurn()
	return p
}

// ResetTurn restores actions/buys/coins to their starting values.
func (p *Player) ResetTurn() {
	p.Actions = StartingActions
	p.Buys = StartingBuys
	p.Coins = StartingCoins
	p.merchantsPlayed = 0
	p.silverPlayed = false
}

// OwnedCount is the number of cards the player owns across deck, hand and discard.
func (p *Player) OwnedCount() int {
	return p.Deck.Size() + p.Hand.Size() + p.Discard.Size()
}

// Score is the player's current victory point total.
func (p *Player) Score() int {
	return ScorePlayer(p.Deck, p.Hand, p.Discard)
}

// HasReaction reports whether the hand holds a Reaction card (Moat).
func (p *Player) HasReaction() bool {
	return p.Hand.IndexWhere((*Card).IsReaction) >= 0
}

// SupplyPile is a kingdom stack of identical cards. Card stays known once the
// pile runs out so the pile can still be named and counted as empty.
type SupplyPile struct {
	Card *Card
	*Pile
}

// Name returns the name of the card this pile supplies.
func (sp *SupplyPile) Name() string {
	return sp.Card.Name
}

// --- GameState ---

// GameState holds the complete state of a game.
type GameState struct {
	ID         string
	Players    [2]*Player
	Kingdom    []*SupplyPile
	Trash      *Pile
	Turn       int // 1-based turn counter
	TurnPlayer int // 0 or 1: whose turn it is
	Phase      Phase

	// ID counter for card instances
	nextID int

	rng       *rand.Rand
	noShuffle bool

	// Game result
	Winner int // 0, 1, or -1 (no winner yet / draw)
	Over   bool
	Result string
}

// NewGameState creates a game state with two empty players and no kingdom.
// A zero seed picks a time-based seed.
func NewGameState(seed int64, names [2]string) *GameState {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GameState{
		ID:      uuid.NewString(),
		Players: [2]*Player{NewPlayer(names[0]), NewPlayer(names[1])},
		Trash:   NewPile(),
		Phase:   PhaseNone,
		Winner:  -1,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// NextID generates a unique card instance ID.
func (gs *GameState) NextID() int {
	gs.nextID++
	return gs.nextID
}

// CreateCardInstance creates a CardInstance from a Card definition.
// Only game setup may call this.
func (gs *GameState) CreateCardInstance(card *Card, owner int) *CardInstance {
	return &CardInstance{Card: card, ID: gs.NextID(), Owner: owner}
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// CurrentPlayer returns the Player struct for the turn player.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.TurnPlayer]
}

// OpponentPlayer returns the Player struct for the non-turn player.
func (gs *GameState) OpponentPlayer() *Player {
	return gs.Players[gs.Opponent(gs.TurnPlayer)]
}

// Supply returns the supply pile for the named card, or nil.
func (gs *GameState) Supply(name string) *SupplyPile {
	for _, sp := range gs.Kingdom {
		if SameName(name, sp.Name()) {
			return sp
		}
	}
	return nil
}

// RefillDeckIfEmpty shuffles the player's discard pile into an empty deck.
// Returns true if the deck holds at least one card afterwards.
func (gs *GameState) RefillDeckIfEmpty(player int) (shuffled bool, ok bool) {
	p := gs.Players[player]
	if !p.Deck.Empty() {
		return false, true
	}
	if p.Discard.Empty() {
		return false, false
	}
	p.Deck.TakeAllFrom(p.Discard)
	if !gs.noShuffle {
		p.Deck.Shuffle(gs.rng)
	}
	return true, true
}

// CardCount is the number of card instances in every pile of the game.
// It never changes after setup.
func (gs *GameState) CardCount() int {
	n := gs.Trash.Size()
	for _, p := range gs.Players {
		n += p.Deck.Size() + p.Hand.Size() + p.Discard.Size() + p.InPlay.Size()
	}
	for _, sp := range gs.Kingdom {
		n += sp.Size()
	}
	return n
}

// Scores returns both players' current scores.
func (gs *GameState) Scores() [2]int {
	return [2]int{gs.Players[0].Score(), gs.Players[1].Score()}
}

// decideWinner marks the game over and records the winner by score.
func (gs *GameState) decideWinner() {
	scores := gs.Scores()
	gs.Over = true
	gs.Phase = PhaseOver
	switch {
	case scores[0] > scores[1]:
		gs.Winner = 0
	case scores[1] > scores[0]:
		gs.Winner = 1
	default:
		gs.Winner = -1
	}
}
