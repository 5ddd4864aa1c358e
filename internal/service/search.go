package service

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/jaskshop/internal/store"
)

const fuzzyThreshold = 0.4

// Find matches catalog products against a storefront query. Substring hits
// on id or name rank first; close name matches by normalized edit distance
// follow, nearest first. An empty query returns the full catalog.
func (s *InventoryService) Find(query string) []store.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Products()
	}
	q := strings.ToUpper(query)

	type scored struct {
		p    store.Product
		dist float64
	}
	var exact, fuzzy []scored
	for _, p := range s.Products() {
		name := strings.ToUpper(p.Name)
		if strings.Contains(name, q) || strings.Contains(strings.ToUpper(p.ID), q) {
			exact = append(exact, scored{p: p})
			continue
		}
		if d := normalizedDistance(q, name); d < fuzzyThreshold {
			fuzzy = append(fuzzy, scored{p: p, dist: d})
		}
	}
	sort.Slice(fuzzy, func(i, j int) bool {
		if fuzzy[i].dist != fuzzy[j].dist {
			return fuzzy[i].dist < fuzzy[j].dist
		}
		return fuzzy[i].p.ID < fuzzy[j].p.ID
	})

	out := make([]store.Product, 0, len(exact)+len(fuzzy))
	for _, m := range exact {
		out = append(out, m.p)
	}
	for _, m := range fuzzy {
		out = append(out, m.p)
	}
	return out
}

func normalizedDistance(a, b string) float64 {
	maxlen := len(a)
	if len(b) > maxlen {
		maxlen = len(b)
	}
	if maxlen == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(maxlen)
}
