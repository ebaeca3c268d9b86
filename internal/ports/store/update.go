package store

import (
	"fmt"
	"sort"

	"monkey-social/internal/platform/jsontree"
)

// Write es una escritura de un batch de Update, con path normalizado.
type Write struct {
	Path  string
	Value any
}

// PlanUpdate normaliza los paths del batch, los ordena y rechaza ancestros solapados.
func PlanUpdate(updates map[string]any) ([]Write, error) {
	out := make([]Write, 0, len(updates))
	for p, v := range updates {
		out = append(out, Write{Path: jsontree.Join(p), Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if jsontree.Overlaps(out[i].Path, out[j].Path) {
				return nil, fmt.Errorf("%w: %q and %q", ErrOverlappingPaths, out[i].Path, out[j].Path)
			}
		}
	}
	return out, nil
}
