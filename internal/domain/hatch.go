package domain

// Rarity bands for hatched creatures, from most to least common.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythical  Rarity = "Mythical"
)

// NotMutated is returned for the 99.5% of hatches with no mutation.
const NotMutated = "Not mutated"

// HatchTraits is the full randomized output of a hatch. It is produced once
// and persisted externally as immutable creature attributes.
type HatchTraits struct {
	Gender      string `json:"gender"`
	Rarity      Rarity `json:"rarity"`
	Genus       string `json:"genus"`
	Mutation    string `json:"mutation"`
	Species     string `json:"species"`
	FirstType   string `json:"first_type"`
	SecondType  string `json:"second_type,omitempty"`
	Potentials  [7]int `json:"potentials"`
	PassiveOne  string `json:"passive_one"`
	PassiveTwo  string `json:"passive_two"`
}
