package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxSheetName is the Excel limit; longer csv stems are truncated.
const maxSheetName = 31

// combineWorkbook folds every CSV in dir into a single workbook, one sheet
// per file, then removes the CSVs. The master file (named after the group)
// becomes the first sheet, followed by the subsets in their fixed order.
func combineWorkbook(dir, workbookName, group string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read building folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil
	}
	sort.SliceStable(files, func(i, j int) bool {
		return sheetRank(files[i], group) < sheetRank(files[j], group)
	})

	wb := excelize.NewFile()
	defer wb.Close()

	for i, name := range files {
		sheet := sheetName(name)
		if i == 0 {
			if err := wb.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := wb.NewSheet(sheet); err != nil {
			return fmt.Errorf("add sheet %s: %w", sheet, err)
		}

		rows, err := readCSVFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		for rowIdx, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			cells := make([]any, len(row))
			for c, v := range row {
				cells[c] = v
			}
			if err := wb.SetSheetRow(sheet, cell, &cells); err != nil {
				return fmt.Errorf("write sheet %s: %w", sheet, err)
			}
		}
	}

	if err := wb.SaveAs(filepath.Join(dir, workbookName)); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	// CSVs live on inside the workbook; drop the loose copies.
	for _, name := range files {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("remove folded csv: %w", err)
		}
	}
	return nil
}

// sheetRank orders the master file first, then the subsets in subsetOrder,
// then anything else.
func sheetRank(fileName, group string) int {
	if strings.HasPrefix(fileName, group) {
		return 0
	}
	for i, subset := range subsetOrder {
		if strings.Contains(fileName, subset) {
			return i + 1
		}
	}
	return len(subsetOrder) + 1
}

func sheetName(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if len(stem) > maxSheetName {
		stem = stem[:maxSheetName]
	}
	return stem
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
