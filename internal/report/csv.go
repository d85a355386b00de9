package report

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/iems-lab/isv-cli/internal/model"
)

// WriteCSV serializes the result set as CSV with a header row.
func WriteCSV(w io.Writer, rs *model.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for _, r := range rs.Rows {
		if err := cw.Write(rowStrings(r)); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}
