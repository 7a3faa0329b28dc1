package domain

import (
	"math"
	"strconv"
	"strings"
)

// Grid is the 2-D editing projection of the cells sharing one
// (plan, role): age group on one axis, subscription term on the other.
// Entries are raw edit-box strings; a blank entry means "no price set",
// which is a different thing from an explicit "0".
type Grid map[int64]map[int64]string

// ToGrid projects the matching cells into grid form. Cells whose price is
// not a finite non-negative number are skipped rather than coerced.
func ToGrid(cells []PriceCell, planName string, role Role) Grid {
	grid := Grid{}
	for _, c := range cells {
		if c.PlanName != planName || c.Role != role {
			continue
		}
		if math.IsNaN(c.Price) || math.IsInf(c.Price, 0) || c.Price < 0 {
			continue
		}
		row, ok := grid[c.AgeGroupID]
		if !ok {
			row = map[int64]string{}
			grid[c.AgeGroupID] = row
		}
		row[c.TermID] = strconv.FormatFloat(c.Price, 'f', -1, 64)
	}
	return grid
}

// FromGrid is the inverse projection. Every entry that parses to a valid
// non-negative number becomes a cell; everything else (blank, garbage,
// negative) is dropped silently. Blank is the "no price set" state, not
// invalid input.
func FromGrid(grid Grid, locationID int64, planName string, role Role) []PriceCell {
	var cells []PriceCell
	for ageGroupID, row := range grid {
		for termID, raw := range row {
			price, ok := parsePrice(raw)
			if !ok {
				continue
			}
			cells = append(cells, PriceCell{
				LocationID: locationID,
				PlanName:   planName,
				Role:       role,
				AgeGroupID: ageGroupID,
				TermID:     termID,
				Price:      price,
				Active:     true,
			})
		}
	}
	return cells
}

func parsePrice(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, false
	}
	return price, true
}
