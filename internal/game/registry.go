package game

import (
	"fmt"
	"strings"
)

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"Copper":       Copper,
	"Silver":       Silver,
	"Gold":         Gold,
	"Estate":       Estate,
	"Duchy":        Duchy,
	"Province":     Province,
	"Curse":        Curse,
	"Cellar":       Cellar,
	"Chapel":       Chapel,
	"Moat":         Moat,
	"Harbinger":    Harbinger,
	"Merchant":     Merchant,
	"Vassal":       Vassal,
	"Village":      Village,
	"Workshop":     Workshop,
	"Bureaucrat":   Bureaucrat,
	"Gardens":      Gardens,
	"Militia":      Militia,
	"Moneylender":  Moneylender,
	"Poacher":      Poacher,
	"Remodel":      Remodel,
	"Smithy":       Smithy,
	"Throne Room":  ThroneRoom,
	"Bandit":       Bandit,
	"Council Room": CouncilRoom,
	"Festival":     Festival,
	"Laboratory":   Laboratory,
	"Library":      Library,
	"Market":       Market,
	"Mine":         Mine,
	"Sentry":       Sentry,
	"Witch":        Witch,
	"Artisan":      Artisan,
}

// KingdomCardNames lists the cards the kingdom generator samples from, in catalog order.
var KingdomCardNames = []string{
	"Cellar", "Chapel", "Moat",
	"Harbinger", "Merchant", "Vassal", "Village", "Workshop",
	"Bureaucrat", "Gardens", "Militia", "Moneylender", "Poacher", "Remodel", "Smithy", "Throne Room",
	"Bandit", "Council Room", "Festival", "Laboratory", "Library", "Market", "Mine", "Sentry", "Witch",
	"Artisan",
}

// normalizeName folds case and drops spaces, hyphens and apostrophes so
// "throneroom", "Throne Room" and "THRONE-ROOM" compare equal.
func normalizeName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '-', '_', '\'':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// SameName reports whether a typed selection names the card.
func SameName(selection, cardName string) bool {
	return normalizeName(selection) == normalizeName(cardName)
}

// FindCard resolves a (loosely typed) card name to a fresh definition.
func FindCard(name string) (*Card, error) {
	if ctor, ok := CardRegistry[name]; ok {
		return ctor(), nil
	}
	for canonical, ctor := range CardRegistry {
		if SameName(name, canonical) {
			return ctor(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
}

// LookupCard looks up a card by name and returns a new instance.
// Panics if the card is not found.
func LookupCard(name string) *Card {
	c, err := FindCard(name)
	if err != nil {
		panic(fmt.Sprintf("card not found in registry: %q", name))
	}
	return c
}
