// Package workbook reads keyword lists from and writes keyword match
// results to xlsx spreadsheets.
package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/amosWeiskopf/onpage/internal/models"
)

// NotFoundFiles fills the file column for keywords with no matches.
const NotFoundFiles = "No encontrada"

// Header is the first row of the results sheet.
var Header = []string{"Keyword", "Número de Coincidencias", "Archivos Encontrados (TXT/HTML)"}

// ReadKeywordColumn returns the raw values of column A, rows 2..N, of the
// first sheet. The header row is skipped and empty cells are dropped.
func ReadKeywordColumn(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var values []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if row[0] == "" {
			continue
		}
		values = append(values, row[0])
	}
	return values, nil
}

// WriteResults writes one row per keyword result into a new workbook at
// path, under a sheet named sheetName.
func WriteResults(path, sheetName string, results []models.KeywordResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, res := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{res.Keyword, res.MatchCount, FilesCell(res)}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// FilesCell renders the files a keyword was found in.
func FilesCell(res models.KeywordResult) string {
	if len(res.FoundIn) == 0 {
		return NotFoundFiles
	}
	return strings.Join(res.FoundIn, " | ")
}
