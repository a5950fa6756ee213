package valuation

import (
	"context"
	"strings"

	"github.com/rewearhq/rewear-backend/pkg/config"
	"github.com/rewearhq/rewear-backend/pkg/enums"
	pkgerrors "github.com/rewearhq/rewear-backend/pkg/errors"
)

// Suggestion is the advisory output for a prospective listing. It never binds
// the uploader; listing creation accepts any manual point value.
type Suggestion struct {
	SuggestedPoints    int `json:"suggested_points"`
	OriginalPriceCents int `json:"original_price_cents"`
}

// Service produces point suggestions from listing metadata.
type Service interface {
	Suggest(ctx context.Context, title string, category string) (*Suggestion, error)
}

type service struct {
	cfg config.ValuationConfig
}

// NewService constructs the heuristic valuation advisor.
func NewService(cfg config.ValuationConfig) Service {
	return &service{cfg: cfg}
}

// categoryBaseCents estimates a typical original retail price per category.
var categoryBaseCents = map[enums.ItemCategory]int{
	enums.ItemCategoryTops:        3500,
	enums.ItemCategoryBottoms:     4500,
	enums.ItemCategoryDresses:     6500,
	enums.ItemCategoryOuterwear:   12000,
	enums.ItemCategoryAccessories: 2500,
	enums.ItemCategoryShoes:       8000,
}

// brandTiers scale the base estimate when the title names a recognizable tier.
var brandTiers = []struct {
	keywords   []string
	multiplier float64
}{
	{[]string{"vintage", "designer", "leather", "silk", "cashmere", "wool"}, 1.8},
	{[]string{"denim", "linen", "suede"}, 1.3},
}

func (s *service) Suggest(ctx context.Context, title string, category string) (*Suggestion, error) {
	if !s.cfg.Enabled {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "valuation advisor is disabled")
	}

	parsed, err := enums.ParseItemCategory(strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}

	base, ok := categoryBaseCents[parsed]
	if !ok {
		base = 4000
	}

	multiplier := 1.0
	lowered := strings.ToLower(title)
	for _, tier := range brandTiers {
		for _, kw := range tier.keywords {
			if strings.Contains(lowered, kw) {
				if tier.multiplier > multiplier {
					multiplier = tier.multiplier
				}
				break
			}
		}
	}

	priceCents := int(float64(base) * multiplier)

	// Resale value is roughly half the original price; ten points per resale
	// dollar, snapped to 25 for tidy listings.
	points := priceCents / 2 / 100 * 10
	points = snapTo(points, 25)
	if points < s.cfg.MinPoints {
		points = s.cfg.MinPoints
	}
	if s.cfg.MaxPoints > 0 && points > s.cfg.MaxPoints {
		points = s.cfg.MaxPoints
	}

	return &Suggestion{
		SuggestedPoints:    points,
		OriginalPriceCents: priceCents,
	}, nil
}

func snapTo(value, step int) int {
	if step <= 0 {
		return value
	}
	snapped := (value + step/2) / step * step
	if snapped <= 0 {
		snapped = step
	}
	return snapped
}
