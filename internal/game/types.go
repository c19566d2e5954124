package game

import "strings"

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseAction
	PhaseTreasure
	PhaseBuy
	PhaseCleanup
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAction:
		return "Action"
	case PhaseTreasure:
		return "Treasure"
	case PhaseBuy:
		return "Buy"
	case PhaseCleanup:
		return "Cleanup"
	case PhaseOver:
		return "Game Over"
	default:
		return "None"
	}
}

// CardType is a bit set; a card may carry several types (Moat is Action|Reaction).
type CardType uint8

const (
	TypeAction CardType = 1 << iota
	TypeAttack
	TypeReaction
	TypeTreasure
	TypeVictory
	TypeBase
)

// Has reports whether every bit of t is set.
func (ct CardType) Has(t CardType) bool {
	return ct&t == t
}

func (ct CardType) String() string {
	var parts []string
	if ct.Has(TypeAction) {
		parts = append(parts, "Action")
	}
	if ct.Has(TypeAttack) {
		parts = append(parts, "Attack")
	}
	if ct.Has(TypeReaction) {
		parts = append(parts, "Reaction")
	}
	if ct.Has(TypeTreasure) {
		parts = append(parts, "Treasure")
	}
	if ct.Has(TypeVictory) {
		parts = append(parts, "Victory")
	}
	if ct.Has(TypeBase) {
		parts = append(parts, "Base")
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "-")
}

// Effect tags a card with the resolver protocol it runs when played.
type Effect int

const (
	EffectNone Effect = iota
	EffectCellar
	EffectChapel
	EffectHarbinger
	EffectMerchant
	EffectVassal
	EffectWorkshop
	EffectBureaucrat
	EffectMilitia
	EffectMoneylender
	EffectPoacher
	EffectRemodel
	EffectThroneRoom
	EffectBandit
	EffectCouncilRoom
	EffectLibrary
	EffectMine
	EffectSentry
	EffectWitch
	EffectArtisan
)

func (e Effect) String() string {
	switch e {
	case EffectCellar:
		return "Cellar"
	case EffectChapel:
		return "Chapel"
	case EffectHarbinger:
		return "Harbinger"
	case EffectMerchant:
		return "Merchant"
	case EffectVassal:
		return "Vassal"
	case EffectWorkshop:
		return "Workshop"
	case EffectBureaucrat:
		return "Bureaucrat"
	case EffectMilitia:
		return "Militia"
	case EffectMoneylender:
		return "Moneylender"
	case EffectPoacher:
		return "Poacher"
	case EffectRemodel:
		return "Remodel"
	case EffectThroneRoom:
		return "Throne Room"
	case EffectBandit:
		return "Bandit"
	case EffectCouncilRoom:
		return "Council Room"
	case EffectLibrary:
		return "Library"
	case EffectMine:
		return "Mine"
	case EffectSentry:
		return "Sentry"
	case EffectWitch:
		return "Witch"
	case EffectArtisan:
		return "Artisan"
	default:
		return "None"
	}
}

// --- Card definition (static, from the catalog) ---

type Card struct {
	Name   string
	Info   string
	Types  CardType
	Cost   int
	Points int

	PlusActions int
	PlusBuys    int
	PlusCoins   int
	PlusCards   int

	Effect Effect
}

func (c *Card) String() string {
	return c.Name
}

// IsActionClass reports whether the card can be played in the Action phase.
func (c *Card) IsActionClass() bool {
	return c.Types&(TypeAction|TypeAttack|TypeReaction) != 0
}

func (c *Card) IsAttack() bool   { return c.Types.Has(TypeAttack) }
func (c *Card) IsReaction() bool { return c.Types.Has(TypeReaction) }
func (c *Card) IsTreasure() bool { return c.Types.Has(TypeTreasure) }
func (c *Card) IsVictory() bool  { return c.Types.Has(TypeVictory) }

// --- CardInstance (runtime card with identity) ---

type CardInstance struct {
	Card  *Card
	ID    int // unique instance ID within a game
	Owner int // player index, -1 for supply cards never gained
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(none)"
	}
	return ci.Card.Name
}

// Name is shorthand for ci.Card.Name.
func (ci *CardInstance) Name() string {
	return ci.Card.Name
}
