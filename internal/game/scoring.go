package game

// GameOverEmptyPiles is how many empty supply piles end the game.
const GameOverEmptyPiles = 3

// ScorePlayer sums the victory points of every card across the given piles.
// Gardens is worth one point per ten cards across all of them.
func ScorePlayer(deck, hand, discard *Pile) int {
	owned := deck.Size() + hand.Size() + discard.Size()
	score := 0
	for _, pile := range []*Pile{deck, hand, discard} {
		for _, c := range pile.cards {
			if c.Card.Name == "Gardens" {
				score += owned / 10
				continue
			}
			score += c.Card.Points
		}
	}
	return score
}

// EmptySupplyCount counts supply piles with no cards left.
func EmptySupplyCount(kingdom []*SupplyPile) int {
	n := 0
	for _, sp := range kingdom {
		if sp.Empty() {
			n++
		}
	}
	return n
}

// IsGameOver reports whether the Province pile is empty or at least three
// supply piles are.
func IsGameOver(kingdom []*SupplyPile) bool {
	for _, sp := range kingdom {
		if sp.Name() == "Province" && sp.Empty() {
			return true
		}
	}
	return EmptySupplyCount(kingdom) >= GameOverEmptyPiles
}
