// Package report serializes a computed result set for its consumers:
// a human-readable table on the terminal, CSV, or an XLSX workbook shaped
// like the spreadsheet the field teams already use.
package report

import (
	"fmt"
	"strconv"

	"github.com/iems-lab/isv-cli/internal/model"
)

// headers is the column order shared by every writer. Numeric counts stay
// integers and the index stays floating point so the table round-trips
// losslessly through any of the formats.
var headers = []string{"site", "depth", "cycle_year", "period", "nver", "dmax", "dver", "isv"}

// rowStrings renders one result row in header order.
func rowStrings(r model.Result) []string {
	return []string{
		r.Site,
		r.Depth,
		strconv.Itoa(r.CycleYear),
		string(r.Period),
		strconv.Itoa(r.NVer),
		strconv.Itoa(r.DMax),
		strconv.Itoa(r.DVer),
		fmt.Sprintf("%.6f", r.ISV),
	}
}
