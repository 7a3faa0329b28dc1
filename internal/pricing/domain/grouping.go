package domain

import "sort"

// GroupRowsByPlan builds the grouped listing: plans in lexicographic
// order, rows within a plan primary-before-add-on, then by the age
// group's minimum age ascending (name as tiebreak, and as fallback when
// the catalog lookup misses). The order is a UI contract.
func GroupRowsByPlan(cells []PriceCell, ageGroups map[int64]AgeGroupInfo) []PlanGroup {
	rowsByKey := map[RowID][]PriceCell{}
	for _, c := range cells {
		key := c.RowKey()
		rowsByKey[key] = append(rowsByKey[key], c)
	}

	groups := map[string][]PricingRow{}
	for key, rowCells := range rowsByKey {
		sort.Slice(rowCells, func(i, j int) bool {
			return rowCells[i].TermID < rowCells[j].TermID
		})
		row := PricingRow{Key: key, Cells: rowCells}
		if info, ok := ageGroups[key.AgeGroupID]; ok {
			row.AgeGroupName = info.Name
			row.MinAge = info.MinAge
		}
		groups[key.PlanName] = append(groups[key.PlanName], row)
	}

	planNames := make([]string, 0, len(groups))
	for name := range groups {
		planNames = append(planNames, name)
	}
	sort.Strings(planNames)

	out := make([]PlanGroup, 0, len(planNames))
	for _, name := range planNames {
		rows := groups[name]
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			if ra, rb := a.Key.Role.SortRank(), b.Key.Role.SortRank(); ra != rb {
				return ra < rb
			}
			if a.MinAge != b.MinAge {
				return a.MinAge < b.MinAge
			}
			return a.AgeGroupName < b.AgeGroupName
		})
		out = append(out, PlanGroup{PlanName: name, Rows: rows})
	}
	return out
}
