package game

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

func suggestLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 10:
		return 2
	default:
		return 3
	}
}

// Suggest finds the catalog modifier closest to a mistyped name.
func (w *World) Suggest(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}

	best, bestDist := "", -1
	for _, id := range w.cat.IDs() {
		cand := strings.ToLower(id)
		dist := levenshtein.ComputeDistance(name, cand)
		if strings.HasPrefix(cand, name) && len(name) >= 3 {
			dist = 0
		}
		if dist > suggestLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = id, dist
		}
	}
	return best, bestDist >= 0
}
