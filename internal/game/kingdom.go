package game

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	KingdomSize = 10

	PileSize        = 10
	VictoryPileSize = 8
	CursePileSize   = 10
	CopperPileSize  = 46
	SilverPileSize  = 40
	GoldPileSize    = 30
)

// KingdomFile represents the top-level YAML structure of a kingdom preset file.
type KingdomFile struct {
	Kingdoms []KingdomEntry `yaml:"kingdoms"`
}

// KingdomEntry is one named fixed set of ten kingdom cards.
type KingdomEntry struct {
	Name  string   `yaml:"name"`
	Cards []string `yaml:"cards"`
}

// ParseKingdoms decodes kingdom presets and checks every entry names ten
// distinct known kingdom cards.
func ParseKingdoms(data []byte) (KingdomFile, error) {
	var kf KingdomFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return kf, fmt.Errorf("parse kingdom YAML: %w", err)
	}
	for i := range kf.Kingdoms {
		names, err := canonicalKingdom(kf.Kingdoms[i].Cards)
		if err != nil {
			return kf, fmt.Errorf("kingdom %q: %w", kf.Kingdoms[i].Name, err)
		}
		kf.Kingdoms[i].Cards = names
	}
	return kf, nil
}

// ParseKingdomFile reads and parses a kingdom preset file.
func ParseKingdomFile(path string) (KingdomFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KingdomFile{}, err
	}
	return ParseKingdoms(data)
}

// KingdomByName returns the preset called name (loose match).
func (kf KingdomFile) KingdomByName(name string) (KingdomEntry, error) {
	for _, k := range kf.Kingdoms {
		if SameName(name, k.Name) {
			return k, nil
		}
	}
	return KingdomEntry{}, fmt.Errorf("kingdom %q not found (have %d kingdoms)", name, len(kf.Kingdoms))
}

// KingdomByNumber returns the Nth kingdom (1-indexed).
func (kf KingdomFile) KingdomByNumber(n int) (KingdomEntry, error) {
	if n < 1 || n > len(kf.Kingdoms) {
		return KingdomEntry{}, fmt.Errorf("kingdom %d not found (have %d kingdoms)", n, len(kf.Kingdoms))
	}
	return kf.Kingdoms[n-1], nil
}

// KingdomPreset reads path and returns the preset named by preset, either a
// 1-based number or a kingdom name.
func KingdomPreset(path, preset string) (KingdomEntry, error) {
	kf, err := ParseKingdomFile(path)
	if err != nil {
		return KingdomEntry{}, fmt.Errorf("load kingdom preset: %w", err)
	}
	if n, err := strconv.Atoi(preset); err == nil {
		return kf.KingdomByNumber(n)
	}
	return kf.KingdomByName(preset)
}

func canonicalKingdom(names []string) ([]string, error) {
	if len(names) != KingdomSize {
		return nil, fmt.Errorf("need %d cards, got %d", KingdomSize, len(names))
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		card, err := FindCard(n)
		if err != nil {
			return nil, err
		}
		if !isKingdomCard(card.Name) {
			return nil, fmt.Errorf("%s is not a kingdom card", card.Name)
		}
		if seen[card.Name] {
			return nil, fmt.Errorf("%s listed twice", card.Name)
		}
		seen[card.Name] = true
		out = append(out, card.Name)
	}
	return out, nil
}

func isKingdomCard(name string) bool {
	for _, k := range KingdomCardNames {
		if k == name {
			return true
		}
	}
	return false
}

// RandomKingdom samples KingdomSize distinct kingdom card names.
func RandomKingdom(r *rand.Rand) []string {
	perm := r.Perm(len(KingdomCardNames))
	names := make([]string, KingdomSize)
	for i := 0; i < KingdomSize; i++ {
		names[i] = KingdomCardNames[perm[i]]
	}
	return names
}

// GenerateKingdom builds the supply: one pile per chosen kingdom card, then
// Estate, Duchy, Province, Curse, Copper, Silver and Gold. A nil or empty
// choice is filled by RandomKingdom.
func (gs *GameState) GenerateKingdom(names []string) error {
	if len(names) == 0 {
		names = RandomKingdom(gs.rng)
	}
	names, err := canonicalKingdom(names)
	if err != nil {
		return fmt.Errorf("generate kingdom: %w", err)
	}

	gs.Kingdom = gs.Kingdom[:0]
	for _, name := range names {
		card := LookupCard(name)
		size := PileSize
		if card.IsVictory() {
			size = VictoryPileSize
		}
		gs.addSupply(card, size)
	}
	gs.addSupply(Estate(), VictoryPileSize)
	gs.addSupply(Duchy(), VictoryPileSize)
	gs.addSupply(Province(), VictoryPileSize)
	gs.addSupply(Curse(), CursePileSize)
	gs.addSupply(Copper(), CopperPileSize)
	gs.addSupply(Silver(), SilverPileSize)
	gs.addSupply(Gold(), GoldPileSize)
	return nil
}

func (gs *GameState) addSupply(card *Card, size int) {
	sp := &SupplyPile{Card: card, Pile: NewPile()}
	for i := 0; i < size; i++ {
		sp.InsertTop(gs.CreateCardInstance(card, -1))
	}
	gs.Kingdom = append(gs.Kingdom, sp)
}
