package hatch

import (
	"context"
	"errors"
	"math"
	"testing"

	"marketplace_webapp/internal/domain"
)

type stubCatalog struct {
	mutations []string
	passives  []string
	err       error
}

func (s *stubCatalog) MutationOptions(ctx context.Context, genus string) ([]string, error) {
	return s.mutations, s.err
}

func (s *stubCatalog) PassiveNames(ctx context.Context) ([]string, error) {
	return s.passives, s.err
}

func TestRarityDistribution(t *testing.T) {
	r := NewRandomizer(NewSeededRNG(42), &stubCatalog{})

	const n = 100000
	counts := make(map[domain.Rarity]int)
	for i := 0; i < n; i++ {
		counts[r.Rarity()]++
	}

	expected := map[domain.Rarity]float64{
		domain.RarityCommon:    0.50,
		domain.RarityUncommon:  0.25,
		domain.RarityRare:      0.125,
		domain.RarityEpic:      0.07,
		domain.RarityLegendary: 0.04,
		domain.RarityMythical:  0.015,
	}

	for rarity, want := range expected {
		got := float64(counts[rarity]) / n
		if math.Abs(got-want) > 0.005 {
			t.Errorf("rarity %s freq = %.4f; want ~%.4f", rarity, got, want)
		}
	}
}

func TestPotentialsWithinBands(t *testing.T) {
	cases := []struct {
		rarity   domain.Rarity
		min, max int
	}{
		{domain.RarityCommon, 0, 24},
		{domain.RarityUncommon, 10, 30},
		{domain.RarityRare, 20, 40},
		{domain.RarityEpic, 30, 50},
		{domain.RarityLegendary, 40, 55},
		{domain.RarityMythical, 50, 65},
	}

	r := NewRandomizer(NewSeededRNG(7), &stubCatalog{})

	for _, tc := range cases {
		for trial := 0; trial < 500; trial++ {
			stats, err := r.Potentials(tc.rarity)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.rarity, err)
			}
			for i, v := range stats {
				if v < tc.min || v > tc.max {
					t.Fatalf("%s: stat %d = %d outside [%d,%d]", tc.rarity, i, v, tc.min, tc.max)
				}
			}
		}
	}
}

func TestMythicalGuaranteesMaxStat(t *testing.T) {
	r := NewRandomizer(NewSeededRNG(99), &stubCatalog{})

	for trial := 0; trial < 2000; trial++ {
		stats, err := r.Potentials(domain.RarityMythical)
		if err != nil {
			t.Fatal(err)
		}
		found := false
		for _, v := range stats {
			if v == 65 {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("mythical potentials %v missing guaranteed 65", stats)
		}
	}
}

func TestPotentialsInvalidRarity(t *testing.T) {
	r := NewRandomizer(NewSeededRNG(1), &stubCatalog{})
	if _, err := r.Potentials(domain.Rarity("Shiny")); !errors.Is(err, ErrInvalidRarity) {
		t.Errorf("expected ErrInvalidRarity, got %v", err)
	}
}

func TestMutationOdds(t *testing.T) {
	r := NewRandomizer(NewSeededRNG(11), &stubCatalog{mutations: []string{"Albino", "Chroma"}})

	const n = 100000
	mutated := 0
	for i := 0; i < n; i++ {
		m, err := r.Mutation(context.Background(), "Lamox")
		if err != nil {
			t.Fatal(err)
		}
		if m != domain.NotMutated {
			mutated++
		}
	}

	freq := float64(mutated) / n
	if math.Abs(freq-0.005) > 0.002 {
		t.Errorf("mutation freq = %.5f; want ~0.005", freq)
	}
}

// A mutated roll with missing catalog metadata must degrade to the sentinel
// string, never to an error.
func TestMutationMissingMetadata(t *testing.T) {
	r := NewRandomizer(NewSeededRNG(3), &stubCatalog{mutations: nil})

	sawSentinel := false
	for i := 0; i < 5000; i++ {
		m, err := r.Mutation(context.Background(), "Kirin")
		if err != nil {
			t.Fatal(err)
		}
		if m == MutationUnspecified {
			sawSentinel = true
		}
	}
	if !sawSentinel {
		t.Error("never saw sentinel mutation over 5000 rolls")
	}
}

func TestPassivesDistinct(t *testing.T) {
	names := []string{"Bulwark", "Swift", "Regrowth", "Venom"}
	r := NewRandomizer(NewSeededRNG(5), &stubCatalog{passives: names})

	for i := 0; i < 1000; i++ {
		one, two, err := r.Passives(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if one == two {
			t.Fatalf("duplicate passives %q on trial %d", one, i)
		}
	}
}

func TestPassivesNamelessEntry(t *testing.T) {
	r := NewRandomizer(NewSeededRNG(5), &stubCatalog{passives: []string{"", "Swift"}})

	one, two, err := r.Passives(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if one != PassiveUnavailable && two != PassiveUnavailable {
		t.Errorf("nameless passive not replaced: %q / %q", one, two)
	}
}

func TestGenderBalance(t *testing.T) {
	r := NewRandomizer(NewSeededRNG(21), &stubCatalog{})

	const n = 50000
	male := 0
	for i := 0; i < n; i++ {
		if r.Gender() == "Male" {
			male++
		}
	}
	freq := float64(male) / n
	if math.Abs(freq-0.5) > 0.01 {
		t.Errorf("male freq = %.4f; want ~0.5", freq)
	}
}

func TestFertilityDeduction(t *testing.T) {
	cases := []struct {
		rarity domain.Rarity
		want   int
	}{
		{domain.RarityCommon, 1000},
		{domain.RarityUncommon, 750},
		{domain.RarityRare, 600},
		{domain.RarityEpic, 500},
		{domain.RarityLegendary, 375},
		{domain.RarityMythical, 300},
	}

	for _, tc := range cases {
		got, err := FertilityDeduction(tc.rarity)
		if err != nil {
			t.Fatalf("%s: %v", tc.rarity, err)
		}
		if got != tc.want {
			t.Errorf("%s deduction = %d; want %d", tc.rarity, got, tc.want)
		}
	}

	if _, err := FertilityDeduction(domain.Rarity("Shiny")); err == nil {
		t.Error("expected error for unknown rarity")
	}
}
