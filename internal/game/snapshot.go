package game

// Snapshot is a read-only projection of the game from one player's seat.
// Zones and scores belong to Seat. Actions, Buys and Coins are always
// ActivePlayer's.
type Snapshot struct {
	GameID        string         `json:"game_id"`
	Player        string         `json:"player"`
	Seat          int            `json:"seat"`
	Turn          int            `json:"turn"`
	Phase         string         `json:"phase"`
	TurnPlayer    int            `json:"turn_player"`
	ActivePlayer  string         `json:"active_player"`
	Actions       int            `json:"actions"`
	Buys          int            `json:"buys"`
	Coins         int            `json:"coins"`
	PlayerScore   int            `json:"player_score"`
	OpponentScore int            `json:"opponent_score"`
	Deck          map[string]int `json:"deck"`
	Hand          map[string]int `json:"hand"`
	Discard       map[string]int `json:"discard"`
	Kingdom       map[string]int `json:"kingdom"`
	Trash         map[string]int `json:"trash"`
	Over          bool           `json:"over"`
	Winner        int            `json:"winner"`
}

// SnapshotFor builds a snapshot with player's zones and the turn player's counters.
func (gs *GameState) SnapshotFor(player int) Snapshot {
	p := gs.Players[player]
	active := gs.Players[gs.TurnPlayer]
	opp := gs.Players[gs.Opponent(player)]
	kingdom := make(map[string]int, len(gs.Kingdom))
	for _, sp := range gs.Kingdom {
		kingdom[sp.Name()] += sp.Size()
	}
	return Snapshot{
		GameID:        gs.ID,
		Player:        p.Name,
		Seat:          player,
		Turn:          gs.Turn,
		Phase:         gs.Phase.String(),
		TurnPlayer:    gs.TurnPlayer,
		ActivePlayer:  active.Name,
		Actions:       active.Actions,
		Buys:          active.Buys,
		Coins:         active.Coins,
		PlayerScore:   p.Score(),
		OpponentScore: opp.Score(),
		Deck:          p.Deck.Counts(),
		Hand:          p.Hand.Counts(),
		Discard:       p.Discard.Counts(),
		Kingdom:       kingdom,
		Trash:         gs.Trash.Counts(),
		Over:          gs.Over,
		Winner:        gs.Winner,
	}
}

// Snapshot is SnapshotFor the turn player.
func (gs *GameState) Snapshot() Snapshot {
	return gs.SnapshotFor(gs.TurnPlayer)
}
