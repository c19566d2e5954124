package game

// --- Base supply cards ---

func Copper() *Card {
	return &Card{Name: "Copper", Info: "+$1.", Types: TypeTreasure, Cost: 0, PlusCoins: 1}
}

func Silver() *Card {
	return &Card{Name: "Silver", Info: "+$2.", Types: TypeTreasure, Cost: 3, PlusCoins: 2}
}

func Gold() *Card {
	return &Card{Name: "Gold", Info: "+$3.", Types: TypeTreasure, Cost: 6, PlusCoins: 3}
}

func Estate() *Card {
	return &Card{Name: "Estate", Info: "1 victory point.", Types: TypeVictory, Cost: 2, Points: 1}
}

func Duchy() *Card {
	return &Card{Name: "Duchy", Info: "3 victory points.", Types: TypeVictory, Cost: 5, Points: 3}
}

func Province() *Card {
	return &Card{Name: "Province", Info: "6 victory points.", Types: TypeVictory, Cost: 8, Points: 6}
}

func Curse() *Card {
	return &Card{Name: "Curse", Info: "-1 victory point.", Types: TypeBase, Cost: 0, Points: -1}
}

// --- Kingdom cards ---

func Cellar() *Card {
	return &Card{
		Name:        "Cellar",
		Info:        "Discard any number of cards. +1 card per card discarded.",
		Types:       TypeAction,
		Cost:        2,
		PlusActions: 1,
		Effect:      EffectCellar,
	}
}

func Chapel() *Card {
	return &Card{
		Name:   "Chapel",
		Info:   "Trash up to four cards from your hand.",
		Types:  TypeAction,
		Cost:   2,
		Effect: EffectChapel,
	}
}

func Moat() *Card {
	return &Card{
		Name:      "Moat",
		Info:      "+2 cards. Nullifies attack cards when in your hand.",
		Types:     TypeAction | TypeReaction,
		Cost:      2,
		PlusCards: 2,
	}
}

func Harbinger() *Card {
	return &Card{
		Name:        "Harbinger",
		Info:        "+1 card, +1 action. You may put a card from your discard pile onto your deck.",
		Types:       TypeAction,
		Cost:        3,
		PlusCards:   1,
		PlusActions: 1,
		Effect:      EffectHarbinger,
	}
}

func Merchant() *Card {
	return &Card{
		Name:        "Merchant",
		Info:        "+1 card, +1 action. The first time you play a Silver this turn, +$1.",
		Types:       TypeAction,
		Cost:        3,
		PlusCards:   1,
		PlusActions: 1,
		Effect:      EffectMerchant,
	}
}

func Vassal() *Card {
	return &Card{
		Name:      "Vassal",
		Info:      "+$2. Discard the top card of your deck. If it's an Action card, you may play it.",
		Types:     TypeAction,
		Cost:      3,
		PlusCoins: 2,
		Effect:    EffectVassal,
	}
}

func Village() *Card {
	return &Card{
		Name:        "Village",
		Info:        "+1 card, +2 actions.",
		Types:       TypeAction,
		Cost:        3,
		PlusCards:   1,
		PlusActions: 2,
	}
}

func Workshop() *Card {
	return &Card{
		Name:   "Workshop",
		Info:   "Gain a card costing up to $4.",
		Types:  TypeAction,
		Cost:   3,
		Effect: EffectWorkshop,
	}
}

func Bureaucrat() *Card {
	return &Card{
		Name:   "Bureaucrat",
		Info:   "Gain a Silver onto your deck. Your opponent reveals a Victory card from hand and topdecks it.",
		Types:  TypeAction | TypeAttack,
		Cost:   4,
		Effect: EffectBureaucrat,
	}
}

func Gardens() *Card {
	return &Card{
		Name:  "Gardens",
		Info:  "Worth 1 point for every 10 cards you own, rounded down.",
		Types: TypeVictory,
		Cost:  4,
	}
}

func Militia() *Card {
	return &Card{
		Name:      "Militia",
		Info:      "+$2. Your opponent discards down to 3 cards in hand.",
		Types:     TypeAction | TypeAttack,
		Cost:      4,
		PlusCoins: 2,
		Effect:    EffectMilitia,
	}
}

func Moneylender() *Card {
	return &Card{
		Name:   "Moneylender",
		Info:   "You may trash a Copper from your hand for +$3.",
		Types:  TypeAction,
		Cost:   4,
		Effect: EffectMoneylender,
	}
}

func Poacher() *Card {
	return &Card{
		Name:        "Poacher",
		Info:        "+1 card, +1 action, +$1. Discard a card per empty supply pile.",
		Types:       TypeAction,
		Cost:        4,
		PlusCards:   1,
		PlusActions: 1,
		PlusCoins:   1,
		Effect:      EffectPoacher,
	}
}

func Remodel() *Card {
	return &Card{
		Name:   "Remodel",
		Info:   "Trash a card from your hand. Gain a card costing up to $2 more than it.",
		Types:  TypeAction,
		Cost:   4,
		Effect: EffectRemodel,
	}
}

func Smithy() *Card {
	return &Card{
		Name:      "Smithy",
		Info:      "+3 cards.",
		Types:     TypeAction,
		Cost:      4,
		PlusCards: 3,
	}
}

func ThroneRoom() *Card {
	return &Card{
		Name:   "Throne Room",
		Info:   "Choose an Action card from your hand. Play it twice.",
		Types:  TypeAction,
		Cost:   4,
		Effect: EffectThroneRoom,
	}
}

func Bandit() *Card {
	return &Card{
		Name:   "Bandit",
		Info:   "Gain a Gold. Your opponent reveals the top 2 cards of their deck, trashes a revealed non-Copper Treasure and discards the rest.",
		Types:  TypeAction | TypeAttack,
		Cost:   5,
		Effect: EffectBandit,
	}
}

func CouncilRoom() *Card {
	return &Card{
		Name:      "Council Room",
		Info:      "+4 cards, +1 buy. Your opponent draws a card.",
		Types:     TypeAction,
		Cost:      5,
		PlusCards: 4,
		PlusBuys:  1,
		Effect:    EffectCouncilRoom,
	}
}

func Festival() *Card {
	return &Card{
		Name:        "Festival",
		Info:        "+2 actions, +1 buy, +$2.",
		Types:       TypeAction,
		Cost:        5,
		PlusActions: 2,
		PlusBuys:    1,
		PlusCoins:   2,
	}
}

func Laboratory() *Card {
	return &Card{
		Name:        "Laboratory",
		Info:        "+2 cards, +1 action.",
		Types:       TypeAction,
		Cost:        5,
		PlusCards:   2,
		PlusActions: 1,
	}
}

func Library() *Card {
	return &Card{
		Name:   "Library",
		Info:   "Draw until you have 7 cards in hand; you may set aside any Action cards drawn this way.",
		Types:  TypeAction,
		Cost:   5,
		Effect: EffectLibrary,
	}
}

func Market() *Card {
	return &Card{
		Name:        "Market",
		Info:        "+1 card, +1 action, +1 buy, +$1.",
		Types:       TypeAction,
		Cost:        5,
		PlusCards:   1,
		PlusActions: 1,
		PlusBuys:    1,
		PlusCoins:   1,
	}
}

func Mine() *Card {
	return &Card{
		Name:   "Mine",
		Info:   "Trash a Treasure from your hand. Gain a Treasure to your hand costing up to $3 more than it.",
		Types:  TypeAction,
		Cost:   5,
		Effect: EffectMine,
	}
}

func Sentry() *Card {
	return &Card{
		Name:        "Sentry",
		Info:        "+1 card, +1 action. Look at the top 2 cards of your deck. Trash and/or discard any number of them. Put the rest back on top.",
		Types:       TypeAction,
		Cost:        5,
		PlusCards:   1,
		PlusActions: 1,
		Effect:      EffectSentry,
	}
}

func Witch() *Card {
	return &Card{
		Name:      "Witch",
		Info:      "+2 cards. Your opponent gains a Curse.",
		Types:     TypeAction | TypeAttack,
		Cost:      5,
		PlusCards: 2,
		Effect:    EffectWitch,
	}
}

func Artisan() *Card {
	return &Card{
		Name:   "Artisan",
		Info:   "Gain a card to your hand costing up to $5. Put a card from your hand onto your deck.",
		Types:  TypeAction,
		Cost:   6,
		Effect: EffectArtisan,
	}
}
