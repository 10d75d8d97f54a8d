package catalog

import (
	"context"
	"fmt"
)

// GenusData is the full pedia entry for a genus.
type GenusData struct {
	Genus      string   `json:"genus"`
	Types      []string `json:"types"`
	Summary    string   `json:"summary"`
	Species    string   `json:"species"`
	Behavior   string   `json:"behavior"`
	Habitat    []string `json:"habitat"`
	Playstyle  string   `json:"playstyle"`
	BaseStats  string   `json:"base_stats"`
}

// GenusData fetches the pedia entry for a genus. A genus must carry one or
// two types; anything else is a catalog data error.
func (c *Client) GenusData(ctx context.Context, genus string) (*GenusData, error) {
	rows, err := c.queryAll(ctx, c.pediaTable)
	if err != nil {
		return nil, err
	}

	row, ok := findGenusRow(rows, genus)
	if !ok {
		return nil, ErrGenusNotFound
	}

	typeOpts := row.Properties["Types"].MultiSelect
	if len(typeOpts) == 0 {
		return nil, fmt.Errorf("genus %s has no types in the catalog", genus)
	}
	if len(typeOpts) > 2 {
		return nil, fmt.Errorf("genus %s has %d types; at most 2 allowed", genus, len(typeOpts))
	}

	data := &GenusData{
		Genus:     genus,
		Summary:   "No summary specified yet.",
		Species:   "No species specified yet.",
		Behavior:  "No behavior specified yet.",
		Playstyle: "No playstyle specified yet.",
		BaseStats: "No base stats specified yet.",
	}

	for _, opt := range typeOpts {
		data.Types = append(data.Types, opt.Name)
	}

	if s := row.Properties["Summary"].plainText(); s != "" {
		data.Summary = s
	}
	if sel := row.Properties["Species"].Select; sel != nil {
		data.Species = sel.Name
	}
	if sel := row.Properties["Behavior"].Select; sel != nil {
		data.Behavior = sel.Name
	}
	for _, h := range row.Properties["Habitat"].MultiSelect {
		data.Habitat = append(data.Habitat, h.Name)
	}
	if s := row.Properties["Intended Playstyle"].plainText(); s != "" {
		data.Playstyle = s
	}
	if s := row.Properties["Base Stats"].plainText(); s != "" {
		data.BaseStats = s
	}

	return data, nil
}

// GenusTypes resolves a genus to its type pair. The second type is empty
// for mono-typed genera.
func (c *Client) GenusTypes(ctx context.Context, genus string) (first, second string, err error) {
	data, err := c.GenusData(ctx, genus)
	if err != nil {
		return "", "", err
	}
	first = data.Types[0]
	if len(data.Types) == 2 {
		second = data.Types[1]
	}
	return first, second, nil
}

// MutationOptions returns the mutation names available for a genus. An
// empty slice means the catalog has none configured yet.
func (c *Client) MutationOptions(ctx context.Context, genus string) ([]string, error) {
	rows, err := c.queryAll(ctx, c.pediaTable)
	if err != nil {
		return nil, err
	}

	row, ok := findGenusRow(rows, genus)
	if !ok {
		return nil, ErrGenusNotFound
	}

	var names []string
	for _, opt := range row.Properties["Mutations"].MultiSelect {
		names = append(names, opt.Name)
	}
	return names, nil
}

// PassiveNames returns every passive name in the passives table. Rows
// missing a title yield an empty string; callers decide how to degrade.
func (c *Client) PassiveNames(ctx context.Context) ([]string, error) {
	rows, err := c.queryAll(ctx, c.passivesTable)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Properties["Name"].titleText())
	}
	return names, nil
}
