package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventPhaseChange
	EventDraw
	EventPlay
	EventPlayTreasure
	EventBuy
	EventGain
	EventDiscard
	EventTrash
	EventTopdeck
	EventReveal
	EventSetAside
	EventShuffle
	EventAttackBlocked
	EventInvalidChoice
	EventCoins
	EventGameOver
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraw:
		return "Draw"
	case EventPlay:
		return "Play"
	case EventPlayTreasure:
		return "PlayTreasure"
	case EventBuy:
		return "Buy"
	case EventGain:
		return "Gain"
	case EventDiscard:
		return "Discard"
	case EventTrash:
		return "Trash"
	case EventTopdeck:
		return "Topdeck"
	case EventReveal:
		return "Reveal"
	case EventSetAside:
		return "SetAside"
	case EventShuffle:
		return "Shuffle"
	case EventAttackBlocked:
		return "AttackBlocked"
	case EventInvalidChoice:
		return "InvalidChoice"
	case EventCoins:
		return "Coins"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Action")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
