package effectiveness

import (
	"context"
	"fmt"
)

// AttackResult classifies what a type pairing is strong or weak against.
type AttackResult struct {
	StrongAgainst []string `json:"strong_against"`
	WeakAgainst   []string `json:"weak_against"`
}

// DefenseResult classifies what a type pairing resists or is vulnerable to.
type DefenseResult struct {
	ResistantTo  []string `json:"resistant_to"`
	VulnerableTo []string `json:"vulnerable_to"`
}

// MatrixSource fetches the multiplier table from the content catalog.
type MatrixSource interface {
	TypeMatrix(ctx context.Context) (Matrix, error)
}

// Calculator derives effectiveness sets from the multiplier matrix. Results
// are recomputed on every call; the matrix is fetched fresh each time.
type Calculator struct {
	source MatrixSource
}

func NewCalculator(source MatrixSource) *Calculator {
	return &Calculator{source: source}
}

// Attack computes the strong/weak sets for one or two types. The first
// type is required; an empty second type means mono-typed. A combined
// multiplier of exactly 1 lands in neither set.
func (c *Calculator) Attack(ctx context.Context, firstType, secondType string) (*AttackResult, error) {
	first, second, err := resolvePair(firstType, secondType)
	if err != nil {
		return nil, err
	}

	m, err := c.source.TypeMatrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("type matrix: %w", err)
	}

	res := &AttackResult{}
	for i, candidate := range AllTypes {
		mult := m.Multiplier(first, i)
		if second >= 0 {
			mult *= m.Multiplier(second, i)
		}
		switch {
		case mult > 1:
			res.StrongAgainst = append(res.StrongAgainst, candidate)
		case mult < 1:
			res.WeakAgainst = append(res.WeakAgainst, candidate)
		}
	}
	return res, nil
}

// Defense computes the resistant/vulnerable sets for one or two types by
// reading each candidate's attack multiplier against the defending types.
func (c *Calculator) Defense(ctx context.Context, firstType, secondType string) (*DefenseResult, error) {
	first, second, err := resolvePair(firstType, secondType)
	if err != nil {
		return nil, err
	}

	m, err := c.source.TypeMatrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("type matrix: %w", err)
	}

	res := &DefenseResult{}
	for i, candidate := range AllTypes {
		mult := m.Multiplier(i, first)
		if second >= 0 {
			mult *= m.Multiplier(i, second)
		}
		switch {
		case mult < 1:
			res.ResistantTo = append(res.ResistantTo, candidate)
		case mult > 1:
			res.VulnerableTo = append(res.VulnerableTo, candidate)
		}
	}
	return res, nil
}

// resolvePair validates the type pair. second is -1 when absent.
func resolvePair(firstType, secondType string) (first, second int, err error) {
	if firstType == "" {
		return -1, -1, ErrUnknownType
	}
	first, err = TypeIndex(firstType)
	if err != nil {
		return -1, -1, err
	}
	second = -1
	if secondType != "" {
		second, err = TypeIndex(secondType)
		if err != nil {
			return -1, -1, err
		}
	}
	return first, second, nil
}
