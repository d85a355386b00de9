package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/iems-lab/isv-cli/internal/model"
)

// ReadWorkbook loads every sheet of an XLSX workbook as one site dataset,
// keyed by sheet name. Sheets without a header row are skipped; a workbook
// with no usable sheet at all is an error.
func ReadWorkbook(path string) (map[string]*model.Dataset, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	return workbookDatasets(f)
}

// ReadWorkbookBytes is ReadWorkbook for an in-memory workbook, used by the
// HTTP upload path.
func ReadWorkbookBytes(data []byte) (map[string]*model.Dataset, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open binary")
	}
	return workbookDatasets(f)
}

func workbookDatasets(f *xlsx.File) (map[string]*model.Dataset, error) {
	sites := make(map[string]*model.Dataset, len(f.Sheets))
	for _, sheet := range f.Sheets {
		ds := sheetDataset(sheet)
		if ds == nil {
			continue
		}
		sites[ds.Site] = ds
	}
	if len(sites) == 0 {
		return nil, eris.New("xlsx: workbook has no usable sheets")
	}
	return sites, nil
}

// sheetDataset converts one sheet into a raw dataset: first row is the
// header, the rest are data rows. Returns nil for sheets with no header.
func sheetDataset(sheet *xlsx.Sheet) *model.Dataset {
	if len(sheet.Rows) == 0 {
		return nil
	}

	columns := rowToStrings(sheet.Rows[0])
	if blankRow(columns) {
		return nil
	}

	ds := &model.Dataset{
		Site:    sheet.Name,
		Columns: columns,
	}
	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if blankRow(cells) {
			continue
		}
		ds.Rows = append(ds.Rows, cells)
	}
	return ds
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
