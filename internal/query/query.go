package query

import (
	"sort"
	"strings"

	"github.com/jewellerymart/catalog/internal/models"
)

const (
	SortPriceLowToHigh = "priceLowToHigh"
	SortPriceHighToLow = "priceHighToLow"
	SortNameAsc        = "nameAsc"
	SortNameDesc       = "nameDesc"
)

// Spec is the validated form of a listing request. Every field is optional;
// an empty field is ignored. Search is resolved during retrieval (repo or
// elasticsearch), so Apply does not re-check it.
type Spec struct {
	Search    string
	Category  string
	MetalType string
	Sort      string
}

// Apply filters candidates by category and metal type, then sorts. The input
// slice is never mutated; the result is always a fresh slice. An unknown sort
// key leaves the filtered order as-is.
func Apply(candidates []models.Product, spec Spec) []models.Product {
	out := make([]models.Product, 0, len(candidates))
	for _, p := range candidates {
		if !matches(p, spec) {
			continue
		}
		out = append(out, p)
	}

	switch spec.Sort {
	case SortPriceLowToHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHighToLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].Name, out[j].Name) })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[j].Name, out[i].Name) })
	}

	return out
}

func matches(p models.Product, spec Spec) bool {
	if spec.Category != "" && (p.Category == "" || !strings.EqualFold(p.Category, spec.Category)) {
		return false
	}
	if spec.MetalType != "" && (p.MetalType == "" || !strings.EqualFold(p.MetalType, spec.MetalType)) {
		return false
	}
	return true
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
