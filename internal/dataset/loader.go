// Package dataset loads tabular files into the dataset model and keeps the
// datasets known to the dashboard.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// Load reads a .csv or .xlsx file. The dataset is named after the file.
func Load(path string) (models.Dataset, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return models.Dataset{}, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return LoadCSV(f, name)
	case ".xlsx":
		return LoadXLSX(path, "")
	default:
		return models.Dataset{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// LoadCSV reads CSV data whose first record is the header
func LoadCSV(r io.Reader, name string) (models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to read CSV data: %w", err)
	}
	return fromRows(rows, name)
}

// LoadXLSX reads one sheet of a workbook; an empty sheet name selects the
// first sheet
func LoadXLSX(path, sheet string) (models.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	return readSheet(f, sheet, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// LoadXLSXReader reads one sheet of a workbook streamed from r
func LoadXLSXReader(r io.Reader, name, sheet string) (models.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to open Excel data: %w", err)
	}
	defer f.Close()
	return readSheet(f, sheet, name)
}

// LoadReader reads a dataset of the type named by filename's extension
func LoadReader(r io.Reader, filename string) (models.Dataset, error) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return LoadCSV(r, name)
	case ".xlsx":
		return LoadXLSXReader(r, name, "")
	default:
		return models.Dataset{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

func readSheet(f *excelize.File, sheet, name string) (models.Dataset, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return models.Dataset{}, fmt.Errorf("workbook %s has no sheets", name)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return fromRows(rows, name)
}

// fromRows turns raw string records into a dataset. Short records are padded
// with empty cells so every row has one cell per header.
func fromRows(rows [][]string, name string) (models.Dataset, error) {
	if len(rows) < 2 {
		return models.Dataset{}, fmt.Errorf("dataset must have at least a header row and one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	data := make([][]interface{}, 0, len(rows)-1)
	for _, record := range rows[1:] {
		if isBlank(record) {
			continue
		}
		row := make([]interface{}, len(headers))
		for j := range headers {
			if j < len(record) {
				row[j] = strings.TrimSpace(record[j])
			} else {
				row[j] = ""
			}
		}
		data = append(data, row)
	}

	return models.Dataset{
		ID:      uuid.New().String(),
		Name:    name,
		Columns: headers,
		Rows:    data,
	}, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
