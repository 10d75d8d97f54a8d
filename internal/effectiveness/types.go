package effectiveness

import (
	"errors"
	"strings"
)

var ErrUnknownType = errors.New("unknown elemental type")

// AllTypes lists the 15 elemental types in matrix row order: attack rows
// and defense columns of the multiplier table use these indices.
var AllTypes = [15]string{
	"Reptile",
	"Toxic",
	"Magic",
	"Psychic",
	"Brawler",
	"Crystal",
	"Frost",
	"Spirit",
	"Nature",
	"Wind",
	"Ordinary",
	"Fire",
	"Earth",
	"Electric",
	"Water",
}

// TypeIndex resolves a type name to its matrix index, case-insensitively.
func TypeIndex(name string) (int, error) {
	for i, t := range AllTypes {
		if strings.EqualFold(t, name) {
			return i, nil
		}
	}
	return -1, ErrUnknownType
}

// Matrix is the 15x15 attacker-by-defender multiplier table. A cell the
// source left empty or malformed carries the neutral multiplier 1.
type Matrix struct {
	cells [15][15]float64
}

// NewMatrix builds a matrix from raw cells. Zero cells normalize to 1.
func NewMatrix(cells [15][15]float64) Matrix {
	m := Matrix{cells: cells}
	for i := range m.cells {
		for j := range m.cells[i] {
			if m.cells[i][j] == 0 {
				m.cells[i][j] = 1
			}
		}
	}
	return m
}

// NeutralMatrix returns a matrix with every multiplier at 1.
func NeutralMatrix() Matrix {
	return NewMatrix([15][15]float64{})
}

// Multiplier returns the multiplier of attacker vs defender by index.
func (m Matrix) Multiplier(attacker, defender int) float64 {
	return m.cells[attacker][defender]
}

// Set overrides a single cell; used when assembling a matrix from the
// catalog and in tests.
func (m *Matrix) Set(attacker, defender int, v float64) {
	if v == 0 {
		v = 1
	}
	m.cells[attacker][defender] = v
}
