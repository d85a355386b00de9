package report

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/iems-lab/isv-cli/internal/model"
)

// PrintTable renders the result set as a human-readable table.
func PrintTable(w io.Writer, rs *model.ResultSet) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(rs.Rows))
	for _, r := range rs.Rows {
		data = append(data, rowStrings(r))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
