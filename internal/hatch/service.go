package hatch

import (
	"context"
	"fmt"

	"marketplace_webapp/internal/domain"
)

// SpeciesOrigin is the species of every first-generation hatch. Species is
// fixed at hatch time; the catalog only describes it.
const SpeciesOrigin = "Origin"

// GenusSource resolves a genus to its elemental types.
type GenusSource interface {
	// GenusTypes returns the first type and optional second type (empty
	// when the genus is mono-typed) for a genus.
	GenusTypes(ctx context.Context, genus string) (first, second string, err error)
}

// Service rolls complete hatch traits and resolves genus metadata.
type Service struct {
	randomizer *Randomizer
	genera     GenusSource
}

func NewService(randomizer *Randomizer, genera GenusSource) *Service {
	return &Service{randomizer: randomizer, genera: genera}
}

// Hatch rolls a full trait set for a new creature. The result is produced
// once and stored externally as immutable attributes.
func (s *Service) Hatch(ctx context.Context) (*domain.HatchTraits, error) {
	gender := s.randomizer.Gender()
	rarity := s.randomizer.Rarity()
	genus := s.randomizer.Genus()

	mutation, err := s.randomizer.Mutation(ctx, genus)
	if err != nil {
		return nil, fmt.Errorf("mutation roll: %w", err)
	}

	potentials, err := s.randomizer.Potentials(rarity)
	if err != nil {
		return nil, err
	}

	passiveOne, passiveTwo, err := s.randomizer.Passives(ctx)
	if err != nil {
		return nil, fmt.Errorf("passives roll: %w", err)
	}

	firstType, secondType, err := s.genera.GenusTypes(ctx, genus)
	if err != nil {
		return nil, fmt.Errorf("genus lookup: %w", err)
	}

	return &domain.HatchTraits{
		Gender:     gender,
		Rarity:     rarity,
		Genus:      genus,
		Mutation:   mutation,
		Species:    SpeciesOrigin,
		FirstType:  firstType,
		SecondType: secondType,
		Potentials: potentials,
		PassiveOne: passiveOne,
		PassiveTwo: passiveTwo,
	}, nil
}
