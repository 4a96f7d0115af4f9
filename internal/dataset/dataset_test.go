package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const salesCSV = `id,region,product,month,units,price,revenue
1,east,widget,jan,3,2.5,7.5
2,west,gadget,jan,1,10

3,east,gadget,feb,4,10,40
`

func TestLoadCSV(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader(salesCSV), "sales")
	require.NoError(t, err)

	_, err = uuid.Parse(ds.ID)
	assert.NoError(t, err, "dataset id should be a uuid")
	assert.Equal(t, "sales", ds.Name)
	assert.Equal(t, []string{"id", "region", "product", "month", "units", "price", "revenue"}, ds.Columns)
	require.Len(t, ds.Rows, 3, "blank lines are skipped")
	assert.Equal(t, "", ds.Rows[1][6], "short rows are padded")
	assert.Equal(t, []string{"id", "units", "price", "revenue"}, ds.NumericColumns())
}

func TestLoadCSVRequiresData(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("a,b\n"), "empty")
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(salesCSV), 0644))

	xlsxPath := filepath.Join(dir, "sales.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	records := [][]interface{}{
		{"id", "region", "revenue"},
		{1, "east", 7.5},
		{2, "west", 10},
	}
	for r, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &record))
	}
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())

	tests := []struct {
		path    string
		columns int
		rows    int
	}{
		{csvPath, 7, 3},
		{xlsxPath, 3, 2},
	}
	for _, tt := range tests {
		t.Run(filepath.Ext(tt.path), func(t *testing.T) {
			ds, err := Load(tt.path)
			require.NoError(t, err)
			assert.Equal(t, "sales", ds.Name)
			assert.Len(t, ds.Columns, tt.columns)
			assert.Len(t, ds.Rows, tt.rows)
		})
	}

	_, err := Load(filepath.Join(dir, "notes.txt"))
	assert.Error(t, err)
}

func TestLoadReader(t *testing.T) {
	ds, err := LoadReader(strings.NewReader(salesCSV), "uploads/sales.CSV")
	require.NoError(t, err)
	assert.Equal(t, "sales", ds.Name)
	assert.Len(t, ds.Columns, 7)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &[]interface{}{"a", "b"}))
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A2", &[]interface{}{1, 2}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ds, err = LoadReader(buf, "book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "book", ds.Name)
	assert.Equal(t, []string{"a", "b"}, ds.Columns)

	_, err = LoadReader(strings.NewReader("x"), "notes.json")
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	s := NewStore()
	_, ok := s.Active()
	assert.False(t, ok)

	a, err := LoadCSV(strings.NewReader(salesCSV), "alpha")
	require.NoError(t, err)
	b, err := LoadCSV(strings.NewReader(salesCSV), "beta")
	require.NoError(t, err)

	s.Add(a)
	s.Add(b)

	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, a.ID, active.ID, "first dataset becomes active")

	require.NoError(t, s.SetActive(b.ID))
	active, _ = s.Active()
	assert.Equal(t, b.ID, active.ID)
	assert.Error(t, s.SetActive("missing"))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.False(t, list[0].Active)
	assert.True(t, list[1].Active)
	assert.Equal(t, 3, list[1].Rows)
}
