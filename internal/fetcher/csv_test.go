package fetcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fazenda-a.csv")
	content := "Data,U20,U40\n2020-11-01,0.40,0.35\n2020-11-02,0.30,0.28\n"
	require.NoError(t, writeFile(path, []byte(content)))

	ds, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "fazenda-a", ds.Site)
	assert.Equal(t, []string{"Data", "U20", "U40"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
}

func TestReadCSV_RaggedRowsTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fazenda-a.csv")
	content := "Data,U20,U40\n2020-11-01,0.40\n2020-11-02,0.30,0.28,extra\n"
	require.NoError(t, writeFile(path, []byte(content)))

	ds, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fazenda-a.csv")
	require.NoError(t, writeFile(path, []byte("Data,U20\n")))

	ds, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Empty(t, ds.Rows)
}

func TestReadCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, writeFile(path, nil))

	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadInputs_MixedFiles(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "fazenda-c.csv")
	require.NoError(t, writeFile(csvPath, []byte("Data,U20\n2020-11-01,0.40\n")))

	xlsxPath := filepath.Join(dir, "sites.xlsx")
	data := buildWorkbook(t, map[string][][]string{
		"fazenda-a": {{"Data", "U20"}, {"2020-11-01", "0.40"}},
	})
	require.NoError(t, writeFile(xlsxPath, data))

	sites, err := ReadInputs([]string{xlsxPath, csvPath})
	require.NoError(t, err)
	assert.Len(t, sites, 2)
	assert.Contains(t, sites, "fazenda-a")
	assert.Contains(t, sites, "fazenda-c")
}

func TestReadInputs_DuplicateSite(t *testing.T) {
	dir := t.TempDir()
	path1 := filepath.Join(dir, "fazenda-a.csv")
	require.NoError(t, writeFile(path1, []byte("Data,U20\n2020-11-01,0.40\n")))

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	path2 := filepath.Join(sub, "fazenda-a.csv")
	require.NoError(t, writeFile(path2, []byte("Data,U20\n2020-11-01,0.40\n")))

	_, err := ReadInputs([]string{path1, path2})
	assert.Error(t, err)
}

func TestReadInputs_UnsupportedExtension(t *testing.T) {
	_, err := ReadInputs([]string{"readings.parquet"})
	assert.Error(t, err)
}
