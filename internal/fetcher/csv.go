package fetcher

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/iems-lab/isv-cli/internal/model"
)

// ReadCSV loads a single-site CSV table. The site is named after the file,
// minus its extension. The first record is the header; ragged rows are
// tolerated since row-level validation happens downstream.
func ReadCSV(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "csv: read file")
	}
	if len(records) == 0 {
		return nil, eris.New("csv: file has no header row")
	}

	base := filepath.Base(path)
	ds := &model.Dataset{
		Site:    strings.TrimSuffix(base, filepath.Ext(base)),
		Columns: records[0],
	}
	if len(records) > 1 {
		ds.Rows = records[1:]
	}
	return ds, nil
}

// ReadInputs loads a mixed list of XLSX and CSV paths into one site map.
// Workbook sheets and CSV base names must not collide; a duplicate site
// name is an error rather than a silent overwrite.
func ReadInputs(paths []string) (map[string]*model.Dataset, error) {
	sites := make(map[string]*model.Dataset)
	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			book, err := ReadWorkbook(path)
			if err != nil {
				return nil, err
			}
			for name, ds := range book {
				if _, exists := sites[name]; exists {
					return nil, eris.Errorf("input: duplicate site %q from %s", name, path)
				}
				sites[name] = ds
			}
		case ".csv":
			ds, err := ReadCSV(path)
			if err != nil {
				return nil, err
			}
			if _, exists := sites[ds.Site]; exists {
				return nil, eris.Errorf("input: duplicate site %q from %s", ds.Site, path)
			}
			sites[ds.Site] = ds
		default:
			return nil, eris.Errorf("input: unsupported file type %q", path)
		}
	}
	return sites, nil
}
