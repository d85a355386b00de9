package model

import "sort"

// Result is one ISV row for a (site, depth, cycle-year, period) partition.
type Result struct {
	Site      string  `json:"site"`
	Depth     string  `json:"depth"`
	CycleYear int     `json:"cycle_year"`
	Period    Period  `json:"period"`
	NVer      int     `json:"nver"`
	DMax      int     `json:"dmax"`
	DVer      int     `json:"dver"`
	ISV       float64 `json:"isv"`
}

// ResultSet is the flat result table for one batch invocation. An empty
// set is the "nothing computable" signal; it is not an error.
type ResultSet struct {
	Rows []Result `json:"rows"`
}

// Empty reports whether the batch produced no rows at all.
func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Rows) == 0
}

// periodRank orders wet before dry, matching the order the seasons occur
// within a cycle-year.
func periodRank(p Period) int {
	if p == PeriodWet {
		return 0
	}
	return 1
}

// Sort orders rows by site, depth, cycle-year, then period (wet first).
// The ordering is total, so identical inputs always serialize identically.
func (rs *ResultSet) Sort() {
	sort.SliceStable(rs.Rows, func(i, j int) bool {
		a, b := rs.Rows[i], rs.Rows[j]
		if a.Site != b.Site {
			return a.Site < b.Site
		}
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		if a.CycleYear != b.CycleYear {
			return a.CycleYear < b.CycleYear
		}
		return periodRank(a.Period) < periodRank(b.Period)
	})
}
