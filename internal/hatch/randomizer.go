package hatch

import (
	"context"
	"errors"

	"marketplace_webapp/internal/domain"
)

var ErrInvalidRarity = errors.New("invalid rarity")

// Sentinel trait strings. A rare roll must never be destroyed because the
// catalog is missing metadata, so these stand in for absent names.
const (
	MutationUnspecified = "Mutated, but no mutation options are available for this genus yet. Please contact support."
	PassiveUnavailable  = "Passive name unavailable. Please contact support."
)

// Genera available for first-generation hatches.
var Genera = [12]string{
	"Lamox",
	"Licorine",
	"Unicorn",
	"Dranexx",
	"Milnas",
	"Todillo",
	"Birvo",
	"Pongu",
	"Darrakan",
	"Kirin",
	"Heree",
	"Spherno",
}

// potentialBand is the inclusive stat range for a rarity.
type potentialBand struct {
	min, max int
}

var potentialBands = map[domain.Rarity]potentialBand{
	domain.RarityCommon:    {0, 24},
	domain.RarityUncommon:  {10, 30},
	domain.RarityRare:      {20, 40},
	domain.RarityEpic:      {30, 50},
	domain.RarityLegendary: {40, 55},
	domain.RarityMythical:  {50, 65},
}

// Catalog supplies the externally-hosted creature metadata.
type Catalog interface {
	MutationOptions(ctx context.Context, genus string) ([]string, error)
	PassiveNames(ctx context.Context) ([]string, error)
}

// Randomizer rolls hatch traits from a uniform random source.
type Randomizer struct {
	rng     RandomSource
	catalog Catalog
}

func NewRandomizer(rng RandomSource, catalog Catalog) *Randomizer {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Randomizer{rng: rng, catalog: catalog}
}

// Gender picks Male or Female with equal odds.
func (r *Randomizer) Gender() string {
	if r.rng.IntN(2) == 0 {
		return "Male"
	}
	return "Female"
}

// Rarity rolls the rarity band from a single 1..1000 draw.
// Odds: 50 / 25 / 12.5 / 7 / 4 / 1.5 percent.
func (r *Randomizer) Rarity() domain.Rarity {
	roll := r.rng.IntN(1000) + 1
	switch {
	case roll <= 500:
		return domain.RarityCommon
	case roll <= 750:
		return domain.RarityUncommon
	case roll <= 875:
		return domain.RarityRare
	case roll <= 945:
		return domain.RarityEpic
	case roll <= 985:
		return domain.RarityLegendary
	default:
		return domain.RarityMythical
	}
}

// Genus picks uniformly among the fixed genera.
func (r *Randomizer) Genus() string {
	return Genera[r.rng.IntN(len(Genera))]
}

// Potentials rolls the 7 potential stats for a rarity. Mythical guarantees
// at least one stat at the band maximum.
func (r *Randomizer) Potentials(rarity domain.Rarity) ([7]int, error) {
	var out [7]int

	band, ok := potentialBands[rarity]
	if !ok {
		return out, ErrInvalidRarity
	}

	span := band.max - band.min + 1
	hasMax := false
	for i := range out {
		out[i] = band.min + r.rng.IntN(span)
		if out[i] == band.max {
			hasMax = true
		}
	}

	if rarity == domain.RarityMythical && !hasMax {
		out[r.rng.IntN(len(out))] = band.max
	}

	return out, nil
}

// Mutation rolls the 0.5% mutation chance. On a hit the mutation type is
// drawn from the catalog's per-genus options; missing metadata degrades to
// a sentinel string instead of failing the hatch.
func (r *Randomizer) Mutation(ctx context.Context, genus string) (string, error) {
	roll := r.rng.IntN(1000) + 1
	if roll < 996 {
		return domain.NotMutated, nil
	}

	options, err := r.catalog.MutationOptions(ctx, genus)
	if err != nil {
		return "", err
	}

	if len(options) == 0 {
		return MutationUnspecified, nil
	}

	picked := options[r.rng.IntN(len(options))]
	if picked == "" {
		return MutationUnspecified, nil
	}
	return picked, nil
}

// Passives draws two distinct passives from the catalog list, resampling
// the second index until it differs from the first.
func (r *Randomizer) Passives(ctx context.Context) (string, string, error) {
	names, err := r.catalog.PassiveNames(ctx)
	if err != nil {
		return "", "", err
	}
	if len(names) < 2 {
		return PassiveUnavailable, PassiveUnavailable, nil
	}

	first := r.rng.IntN(len(names))
	second := r.rng.IntN(len(names))
	for second == first {
		second = r.rng.IntN(len(names))
	}

	one, two := names[first], names[second]
	if one == "" {
		one = PassiveUnavailable
	}
	if two == "" {
		two = PassiveUnavailable
	}
	return one, two, nil
}

// FertilityDeduction returns the fertility point cost applied after
// breeding, banded by rarity.
func FertilityDeduction(rarity domain.Rarity) (int, error) {
	switch rarity {
	case domain.RarityCommon:
		return 1000, nil
	case domain.RarityUncommon:
		return 750, nil
	case domain.RarityRare:
		return 600, nil
	case domain.RarityEpic:
		return 500, nil
	case domain.RarityLegendary:
		return 375, nil
	case domain.RarityMythical:
		return 300, nil
	default:
		return 0, ErrInvalidRarity
	}
}
