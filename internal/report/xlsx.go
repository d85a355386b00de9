package report

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/iems-lab/isv-cli/internal/model"
)

// ResultSheet is the sheet name the original field workbook used for
// exported results; kept so downstream tooling keeps working.
const ResultSheet = "ISV_Resultados"

// WriteXLSX serializes the result set as a single-sheet XLSX workbook.
// Counts are written as integers and the index as a float so the schema
// round-trips without coercion.
func WriteXLSX(w io.Writer, rs *model.ResultSet) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(ResultSheet)
	if err != nil {
		return eris.Wrap(err, "report: add result sheet")
	}

	header := sheet.AddRow()
	for _, h := range headers {
		header.AddCell().Value = h
	}

	for _, r := range rs.Rows {
		row := sheet.AddRow()
		row.AddCell().Value = r.Site
		row.AddCell().Value = r.Depth
		row.AddCell().SetInt(r.CycleYear)
		row.AddCell().Value = string(r.Period)
		row.AddCell().SetInt(r.NVer)
		row.AddCell().SetInt(r.DMax)
		row.AddCell().SetInt(r.DVer)
		row.AddCell().SetFloat(r.ISV)
	}

	return eris.Wrap(f.Write(w), "report: write workbook")
}
