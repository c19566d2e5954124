package game

import (
	"fmt"

	"github.com/dannyallover/dominion/internal/log"
)

const (
	ChapelTrashLimit  = 4
	WorkshopGainLimit = 4
	RemodelGainBonus  = 2
	MineGainBonus     = 3
	ArtisanGainLimit  = 5
	MilitiaHandLimit  = 3
	MoneylenderCoins  = 3
	LibraryHandSize   = 7
	ThroneRoomReplays = 2
	RevealCount       = 2

	// Poacher discards one card per supply name missing from this total.
	PoacherFullSupply = 17
)

// resolve dispatches an effect for player and reports whether the card that
// carried it should go to the Trash instead of the discard pile.
func (g *Game) resolve(effect Effect, player int) (bool, error) {
	switch effect {
	case EffectNone:
		return false, nil
	case EffectCellar:
		return false, g.resolveCellar(player)
	case EffectChapel:
		return false, g.resolveChapel(player)
	case EffectHarbinger:
		return false, g.resolveHarbinger(player)
	case EffectMerchant:
		g.State.Players[player].merchantsPlayed++
		return false, nil
	case EffectVassal:
		return false, g.resolveVassal(player)
	case EffectWorkshop:
		return false, g.gainUpTo(player, WorkshopGainLimit, FilterAny, false)
	case EffectBureaucrat:
		return false, g.resolveBureaucrat(player)
	case EffectMilitia:
		return false, g.resolveMilitia(player)
	case EffectMoneylender:
		return false, g.resolveMoneylender(player)
	case EffectPoacher:
		return false, g.resolvePoacher(player)
	case EffectRemodel:
		return false, g.resolveRemodel(player)
	case EffectThroneRoom:
		return false, g.resolveThroneRoom(player)
	case EffectBandit:
		return false, g.resolveBandit(player)
	case EffectCouncilRoom:
		g.drawCards(g.State.Opponent(player), 1)
		return false, nil
	case EffectLibrary:
		return false, g.resolveLibrary(player)
	case EffectMine:
		return false, g.resolveMine(player)
	case EffectSentry:
		return false, g.resolveSentry(player)
	case EffectWitch:
		opp := g.State.Opponent(player)
		return false, g.gainNamed(opp, "Curse", g.State.Players[opp].Discard, "discard")
	case EffectArtisan:
		return false, g.resolveArtisan(player)
	default:
		panic(fmt.Sprintf("unhandled effect %s", effect))
	}
}

// Cellar: discard any number of cards, then draw that many without reshuffling.
func (g *Game) resolveCellar(player int) error {
	p := g.State.Players[player]
	discarded := 0
	for !p.Hand.Empty() {
		opt, err := g.chooseFromHand(player, QueryDiscard, "Cellar: discard a card (index), -1 to stop", true, false, FilterAny)
		if err != nil {
			return err
		}
		if opt == nil {
			break
		}
		if err := g.discardAt(player, p.Hand, opt.Index); err != nil {
			return err
		}
		discarded++
	}
	for i := 0; i < discarded; i++ {
		g.drawNoRefill(player)
	}
	return nil
}

// Chapel: trash up to four cards from hand.
func (g *Game) resolveChapel(player int) error {
	p := g.State.Players[player]
	for i := 0; i < ChapelTrashLimit && !p.Hand.Empty(); i++ {
		opt, err := g.chooseFromHand(player, QueryTrash,
			fmt.Sprintf("Chapel: trash a card (index), -1 to stop (%d left)", ChapelTrashLimit-i), true, false, FilterAny)
		if err != nil {
			return err
		}
		if opt == nil {
			break
		}
		if _, err := g.trashAt(player, p.Hand, opt.Index); err != nil {
			return err
		}
	}
	return nil
}

// Harbinger: put a card named from the discard pile on top of the deck. A name
// with no match in the discard pile asks again; only -1 declines.
func (g *Game) resolveHarbinger(player int) error {
	p := g.State.Players[player]
	if p.Discard.Empty() {
		return nil
	}
	q := Query{
		Kind:      QueryTopdeck,
		Player:    player,
		Prompt:    "Harbinger: name a card in your discard pile to put on your deck, -1 for none",
		Options:   pileOptions(p.Discard),
		AllowSkip: true,
		ByName:    true,
		MaxCost:   -1,
	}
	opt, err := g.choose(q, nil)
	if err != nil || opt == nil {
		return err
	}
	return g.topdeckAt(player, p.Discard, opt.Index)
}

// Vassal: reveal the top card; an Action may be played for free. The revealed
// card ends in the discard pile either way, or the Trash if its play says so.
func (g *Game) resolveVassal(player int) error {
	gs := g.State
	p := gs.Players[player]
	ci := g.revealTop(player, p.InPlay)
	if ci == nil {
		return nil
	}
	trashed := false
	if ci.Card.IsActionClass() {
		play, err := g.chooseYesNo(player, fmt.Sprintf("Vassal: play the revealed %s?", ci.Name()))
		if err != nil {
			return err
		}
		if play {
			g.log(log.NewPlayEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
			if trashed, err = g.playBody(player, ci); err != nil {
				return err
			}
		}
	}
	if !trashed {
		g.log(log.NewDiscardEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
	}
	return g.routePlayed(player, ci, trashed)
}

// gainUpTo lets player gain a supply card costing at most limit, to hand or
// discard. Nothing happens if no pile qualifies.
func (g *Game) gainUpTo(player, limit int, filter CardFilter, toHand bool) error {
	if !g.anyGainable(limit, filter) {
		return nil
	}
	p := g.State.Players[player]
	dst, zone := p.Discard, "discard"
	if toHand {
		dst, zone = p.Hand, "hand"
	}
	sp, err := g.chooseGain(player, fmt.Sprintf("Gain a card costing up to %d", limit), limit, filter)
	if err != nil {
		return err
	}
	_, err = g.gain(player, sp, dst, zone)
	return err
}

// Bureaucrat: gain a Silver onto the deck; the opponent topdecks the first
// Victory card in their hand.
func (g *Game) resolveBureaucrat(player int) error {
	gs := g.State
	if err := g.gainNamed(player, "Silver", gs.Players[player].Deck, "deck"); err != nil {
		return err
	}
	opp := gs.Opponent(player)
	op := gs.Players[opp]
	idx := op.Hand.IndexWhere((*Card).IsVictory)
	if idx < 0 {
		return nil
	}
	ci, _ := op.Hand.At(idx)
	g.log(log.NewRevealEvent(gs.Turn, gs.Phase.String(), opp, ci.Name()))
	return g.topdeckAt(opp, op.Hand, idx)
}

// Militia: the opponent discards down to three cards.
func (g *Game) resolveMilitia(player int) error {
	opp := g.State.Opponent(player)
	op := g.State.Players[opp]
	for op.Hand.Size() > MilitiaHandLimit {
		opt, err := g.chooseFromHand(opp, QueryDiscard,
			fmt.Sprintf("Militia: discard a card (index) until you have %d", MilitiaHandLimit), false, false, FilterAny)
		if err != nil {
			return err
		}
		if err := g.discardAt(opp, op.Hand, opt.Index); err != nil {
			return err
		}
	}
	return nil
}

// Moneylender: optionally trash a Copper for +3 coins.
func (g *Game) resolveMoneylender(player int) error {
	p := g.State.Players[player]
	idx := p.Hand.IndexOf("Copper")
	if idx < 0 {
		return nil
	}
	ok, err := g.chooseYesNo(player, fmt.Sprintf("Moneylender: trash a Copper for +%d coins?", MoneylenderCoins))
	if err != nil || !ok {
		return err
	}
	if _, err := g.trashAt(player, p.Hand, idx); err != nil {
		return err
	}
	g.addCoins(player, MoneylenderCoins, "Moneylender")
	return nil
}

// Poacher: discard one card (by name) per card name missing from the supply.
func (g *Game) resolvePoacher(player int) error {
	p := g.State.Players[player]
	present := make(map[string]bool, len(g.State.Kingdom))
	for _, sp := range g.State.Kingdom {
		if !sp.Empty() {
			present[sp.Name()] = true
		}
	}
	n := PoacherFullSupply - len(present)
	for ; n > 0 && !p.Hand.Empty(); n-- {
		opt, err := g.chooseFromHand(player, QueryDiscard,
			fmt.Sprintf("Poacher: name a card to discard (%d left)", n), false, true, FilterAny)
		if err != nil {
			return err
		}
		if err := g.discardAt(player, p.Hand, opt.Index); err != nil {
			return err
		}
	}
	return nil
}

// Remodel: trash a card from hand, gain one costing up to 2 more.
func (g *Game) resolveRemodel(player int) error {
	p := g.State.Players[player]
	if p.Hand.Empty() {
		return nil
	}
	opt, err := g.chooseFromHand(player, QueryTrash, "Remodel: trash a card (index)", false, false, FilterAny)
	if err != nil {
		return err
	}
	ci, err := g.trashAt(player, p.Hand, opt.Index)
	if err != nil {
		return err
	}
	return g.gainUpTo(player, ci.Card.Cost+RemodelGainBonus, FilterAny, false)
}

// Mine: trash a Treasure from hand, gain a Treasure costing up to 3 more to hand.
func (g *Game) resolveMine(player int) error {
	p := g.State.Players[player]
	if p.Hand.IndexWhere((*Card).IsTreasure) < 0 {
		return nil
	}
	opt, err := g.chooseFromHand(player, QueryTrash, "Mine: trash a treasure (index)", false, false, FilterTreasure)
	if err != nil {
		return err
	}
	ci, err := g.trashAt(player, p.Hand, opt.Index)
	if err != nil {
		return err
	}
	return g.gainUpTo(player, ci.Card.Cost+MineGainBonus, FilterTreasure, true)
}

// Artisan: gain a card costing up to 5 to hand, then put a card from hand on the deck.
func (g *Game) resolveArtisan(player int) error {
	p := g.State.Players[player]
	if err := g.gainUpTo(player, ArtisanGainLimit, FilterAny, true); err != nil {
		return err
	}
	if p.Hand.Empty() {
		return nil
	}
	opt, err := g.chooseFromHand(player, QueryTopdeck, "Artisan: put a card from your hand onto your deck (index)", false, false, FilterAny)
	if err != nil {
		return err
	}
	return g.topdeckAt(player, p.Hand, opt.Index)
}

// Throne Room: play an Action card from hand twice. The replayed card is
// trashed if either play trashes it.
func (g *Game) resolveThroneRoom(player int) error {
	gs := g.State
	p := gs.Players[player]
	if p.Hand.IndexWhere((*Card).IsActionClass) < 0 {
		return nil
	}
	opt, err := g.chooseFromHand(player, QueryReplay, "Throne Room: choose an action card to play twice (index)", false, false, FilterAction)
	if err != nil {
		return err
	}
	ci, err := p.Hand.MoveAt(opt.Index, p.InPlay)
	if err != nil {
		return err
	}
	trashed := false
	for i := 0; i < ThroneRoomReplays; i++ {
		g.log(log.NewPlayEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
		t, err := g.playBody(player, ci)
		if err != nil {
			return err
		}
		trashed = trashed || t
	}
	return g.routePlayed(player, ci, trashed)
}

// Bandit: gain a Gold; the opponent reveals two cards, trashes a non-Copper
// Treasure among them and discards the rest. With two such Treasures the
// opponent picks which one goes.
func (g *Game) resolveBandit(player int) error {
	gs := g.State
	if err := g.gainNamed(player, "Gold", gs.Players[player].Discard, "discard"); err != nil {
		return err
	}
	opp := gs.Opponent(player)
	revealed := NewPile()
	for i := 0; i < RevealCount; i++ {
		if g.revealTop(opp, revealed) == nil {
			break
		}
	}

	banditable := func(c *Card) bool { return c.IsTreasure() && c.Name != "Copper" }
	var candidates []int
	for i, ci := range revealed.cards {
		if banditable(ci.Card) {
			candidates = append(candidates, i)
		}
	}

	switch len(candidates) {
	case 0:
	case 1:
		if _, err := g.trashAt(opp, revealed, candidates[0]); err != nil {
			return err
		}
	default:
		q := Query{
			Kind:    QueryTrash,
			Player:  opp,
			Prompt:  "Bandit: choose which revealed treasure to trash",
			Options: pileOptions(revealed),
			ByName:  true,
			ByIndex: true,
			MaxCost: -1,
		}
		opt, err := g.choose(q, func(o Option) error {
			c, _ := revealed.At(o.Index)
			if !banditable(c.Card) {
				return invalidChoice(o.Name + " cannot be trashed by Bandit")
			}
			return nil
		})
		if err != nil {
			return err
		}
		if _, err := g.trashAt(opp, revealed, opt.Index); err != nil {
			return err
		}
	}
	for !revealed.Empty() {
		if err := g.discardAt(opp, revealed, revealed.Size()-1); err != nil {
			return err
		}
	}
	return nil
}

// Library: draw until seven cards are in hand, without reshuffling. Each
// Action drawn may be set aside to the discard pile.
func (g *Game) resolveLibrary(player int) error {
	gs := g.State
	p := gs.Players[player]
	for p.Hand.Size() < LibraryHandSize {
		ci := g.drawNoRefill(player)
		if ci == nil {
			break
		}
		if !ci.Card.IsActionClass() {
			continue
		}
		aside, err := g.chooseYesNo(player, fmt.Sprintf("Library: set aside %s?", ci.Name()))
		if err != nil {
			return err
		}
		if aside {
			if err := p.Hand.MoveCard(ci, p.Discard); err != nil {
				return err
			}
			g.log(log.NewSetAsideEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
		}
	}
	return nil
}

// Sentry: look at the top two cards. Pass one trashes and pass two discards,
// each by name until -1; a name matches every unresolved card carrying it.
// If both cards survive, pass three names the one to put back first and the
// other lands on top of it. A lone survivor goes back on its own.
func (g *Game) resolveSentry(player int) error {
	gs := g.State
	p := gs.Players[player]
	revealed := make([]*CardInstance, 0, RevealCount)
	held := NewPile()
	for i := 0; i < RevealCount; i++ {
		ci := g.revealTop(player, held)
		if ci == nil {
			break
		}
		revealed = append(revealed, ci)
	}
	resolved := make([]bool, len(revealed))
	remaining := func() int {
		n := 0
		for _, r := range resolved {
			if !r {
				n++
			}
		}
		return n
	}
	// pick asks for a name among unresolved cards and moves every match to dst.
	pick := func(kind QueryKind, prompt string, skip bool, dst *Pile, event func(int, string, int, string) log.GameEvent) (bool, error) {
		var opts []Option
		for i, ci := range revealed {
			if !resolved[i] {
				opts = append(opts, Option{Index: i, Name: ci.Name(), Cost: ci.Card.Cost, Types: ci.Card.Types.String()})
			}
		}
		q := Query{Kind: kind, Player: player, Prompt: prompt, Options: opts, AllowSkip: skip, ByName: true, MaxCost: -1}
		opt, err := g.choose(q, nil)
		if err != nil || opt == nil {
			return false, err
		}
		for i, ci := range revealed {
			if resolved[i] || !SameName(opt.Name, ci.Name()) {
				continue
			}
			if err := held.MoveCard(ci, dst); err != nil {
				return false, err
			}
			resolved[i] = true
			g.log(event(gs.Turn, gs.Phase.String(), player, ci.Name()))
		}
		return true, nil
	}

	for remaining() > 0 {
		more, err := pick(QueryTrash, "Sentry: name a revealed card to trash, -1 for none", true, gs.Trash, log.NewTrashEvent)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	for remaining() > 0 {
		more, err := pick(QueryDiscard, "Sentry: name a revealed card to discard, -1 for none", true, p.Discard, log.NewDiscardEvent)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	if len(revealed) == RevealCount && remaining() == RevealCount {
		if _, err := pick(QueryTopdeck, "Sentry: name the card to put back first", false, p.Deck, log.NewTopdeckEvent); err != nil {
			return err
		}
	}
	for i, ci := range revealed {
		if resolved[i] {
			continue
		}
		if err := held.MoveCard(ci, p.Deck); err != nil {
			return err
		}
		resolved[i] = true
		g.log(log.NewTopdeckEvent(gs.Turn, gs.Phase.String(), player, ci.Name()))
	}
	return nil
}
