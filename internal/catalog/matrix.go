package catalog

import (
	"context"
	"fmt"
	"strconv"

	"marketplace_webapp/internal/effectiveness"
)

// TypeMatrix fetches and parses the 15x15 multiplier table. Row order
// matches effectiveness.AllTypes; cells hold percentages as rich text
// (e.g. "150" means 1.5x). Empty or malformed cells stay neutral.
func (c *Client) TypeMatrix(ctx context.Context) (effectiveness.Matrix, error) {
	rows, err := c.queryAll(ctx, c.typesTable)
	if err != nil {
		return effectiveness.Matrix{}, err
	}

	if len(rows) < len(effectiveness.AllTypes) {
		return effectiveness.Matrix{}, fmt.Errorf(
			"type table has %d rows; want %d", len(rows), len(effectiveness.AllTypes))
	}

	m := effectiveness.NeutralMatrix()
	for attacker := range effectiveness.AllTypes {
		props := rows[attacker].Properties
		for defender, name := range effectiveness.AllTypes {
			cell := props[name].plainText()
			if cell == "" {
				continue
			}
			pct, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			m.Set(attacker, defender, pct/100)
		}
	}

	return m, nil
}
