package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dannyallover/dominion/internal/log"
)

// SkipSelection is the selection that ends a loop or declines an optional choice.
const SkipSelection = "-1"

// choose asks the seat until it returns a legal selection. A nil Option
// means the seat skipped. accept applies the rule checks that depend on the
// chosen option; an InvalidChoiceError from it re-prompts, any other error aborts.
func (g *Game) choose(q Query, accept func(Option) error) (*Option, error) {
	for {
		if err := g.ctx.Err(); err != nil {
			return nil, err
		}
		sel, err := g.Controllers[q.Player].Choose(g.ctx, g.State, q)
		if err != nil {
			return nil, fmt.Errorf("%w: %s for P%d: %w", ErrFatalInput, q.Kind, q.Player+1, err)
		}
		opt, err := resolveSelection(q, sel)
		if err == nil && opt != nil && accept != nil {
			err = accept(*opt)
		}
		if err != nil {
			var invalid InvalidChoiceError
			if !errors.As(err, &invalid) {
				return nil, err
			}
			g.log(log.NewInvalidChoiceEvent(g.State.Turn, g.State.Phase.String(), q.Player, sel, string(invalid)))
			continue
		}
		return opt, nil
	}
}

// resolveSelection maps a raw selection onto the query's options.
func resolveSelection(q Query, sel string) (*Option, error) {
	sel = strings.TrimSpace(sel)
	if sel == SkipSelection {
		if !q.AllowSkip {
			return nil, invalidChoice("a selection is required")
		}
		return nil, nil
	}
	if sel == "" {
		return nil, invalidChoice("empty selection")
	}
	if q.ByIndex {
		if n, err := strconv.Atoi(sel); err == nil {
			for i := range q.Options {
				if q.Options[i].Index == n {
					return &q.Options[i], nil
				}
			}
			return nil, invalidChoice(fmt.Sprintf("index %d out of range", n))
		}
	}
	if q.ByName {
		for i := range q.Options {
			if SameName(sel, q.Options[i].Name) {
				return &q.Options[i], nil
			}
		}
		return nil, invalidChoice(fmt.Sprintf("no %q to choose", sel))
	}
	return nil, invalidChoice("expected an index")
}

// chooseYesNo asks a yes/no question of player.
func (g *Game) chooseYesNo(player int, prompt string) (bool, error) {
	if err := g.ctx.Err(); err != nil {
		return false, err
	}
	ok, err := g.Controllers[player].ChooseYesNo(g.ctx, g.State, prompt)
	if err != nil {
		return false, fmt.Errorf("%w: yes/no for P%d: %w", ErrFatalInput, player+1, err)
	}
	return ok, nil
}

// chooseFromHand asks player for a card in their hand that passes filter.
func (g *Game) chooseFromHand(player int, kind QueryKind, prompt string, skip, byName bool, filter CardFilter) (*Option, error) {
	hand := g.State.Players[player].Hand
	q := Query{
		Kind:      kind,
		Player:    player,
		Prompt:    prompt,
		Options:   pileOptions(hand),
		AllowSkip: skip,
		ByName:    byName,
		ByIndex:   !byName,
		MaxCost:   -1,
		Filter:    filter,
	}
	return g.choose(q, func(o Option) error {
		if c, err := hand.At(o.Index); err == nil && !filter.Allows(c.Card) {
			return filter.reject(o.Name)
		}
		return nil
	})
}

// chooseGain asks player for a supply pile costing at most maxCost that
// passes filter (Mine gains Treasures only).
func (g *Game) chooseGain(player int, prompt string, maxCost int, filter CardFilter) (*SupplyPile, error) {
	q := Query{
		Kind:    QueryGain,
		Player:  player,
		Prompt:  prompt,
		Options: supplyOptions(g.State.Kingdom),
		ByName:  true,
		ByIndex: true,
		MaxCost: maxCost,
		Filter:  filter,
	}
	opt, err := g.choose(q, func(o Option) error {
		sp := g.State.Kingdom[o.Index]
		switch {
		case sp.Empty():
			return invalidChoice(sp.Name() + " pile is empty")
		case sp.Card.Cost > maxCost:
			return invalidChoice(fmt.Sprintf("%s costs %d, limit is %d", sp.Name(), sp.Card.Cost, maxCost))
		case !filter.Allows(sp.Card):
			return filter.reject(sp.Name())
		}
		return nil
	})
	if err != nil || opt == nil {
		return nil, err
	}
	return g.State.Kingdom[opt.Index], nil
}

// anyGainable reports whether some non-empty pile satisfies the gain limit.
func (g *Game) anyGainable(maxCost int, filter CardFilter) bool {
	for _, sp := range g.State.Kingdom {
		if !sp.Empty() && sp.Card.Cost <= maxCost && filter.Allows(sp.Card) {
			return true
		}
	}
	return false
}
