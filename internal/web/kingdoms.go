package web

import (
	"os"

	"github.com/dannyallover/dominion/internal/game"
)

// loadKingdoms reads the preset file for /api/kingdoms. A missing path is
// not an error: the server then offers random kingdoms only.
func loadKingdoms(path string) ([]KingdomInfo, error) {
	if path == "" {
		return []KingdomInfo{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	kf, err := game.ParseKingdoms(data)
	if err != nil {
		return nil, err
	}
	kingdoms := make([]KingdomInfo, 0, len(kf.Kingdoms))
	for i, k := range kf.Kingdoms {
		kingdoms = append(kingdoms, KingdomInfo{Number: i + 1, Name: k.Name, Cards: k.Cards})
	}
	return kingdoms, nil
}
