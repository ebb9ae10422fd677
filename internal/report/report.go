// Package report renders a finished result set into the district's
// delivery layout: one folder per building group holding a master CSV, the
// category subset CSVs, and a combined Excel workbook, plus the
// uncategorized extract, the alt/HR extract, and the district-wide final
// report.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/districtops/atttrack/internal/config"
	"github.com/districtops/atttrack/internal/engine"
	"github.com/districtops/atttrack/internal/record"
	"github.com/districtops/atttrack/internal/tabular"
)

// FinalReportName is the district-wide CSV written at the output root.
const FinalReportName = "final_report.csv"

// Writer renders result sets under a single output directory.
type Writer struct {
	Config *config.Config
	OutDir string
}

// New returns a Writer rooted at outDir.
func New(cfg *config.Config, outDir string) *Writer {
	return &Writer{Config: cfg, OutDir: outDir}
}

// Columns is the report column order: the configured order filtered to
// known result columns, or the full default order when the config lists
// none.
func (w *Writer) Columns() []string {
	if len(w.Config.ColumnOrder) == 0 {
		return record.ResultColumns
	}
	var cols []string
	for _, c := range w.Config.ColumnOrder {
		if record.IsResultColumn(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Rows renders results into CSV cells in the given column order.
func Rows(results []*record.Result, cols []string) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = r.Cell(c)
		}
		rows = append(rows, row)
	}
	return rows
}

func (w *Writer) writeCSV(path string, results []*record.Result, cols []string) error {
	return tabular.WriteCSV(path, cols, Rows(results, cols))
}

// ClearOldCSVs removes leftover CSV files from every building group folder
// and the Uncategorized folder so a rerun never mixes weeks. Workbooks are
// left in place; folders that do not exist yet are skipped.
func (w *Writer) ClearOldCSVs() error {
	dirs := w.Config.GroupNames()
	dirs = append(dirs, "Uncategorized")
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(w.OutDir, dir, "*.csv"))
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil {
				return fmt.Errorf("remove stale csv: %w", err)
			}
		}
		if len(matches) > 0 {
			slog.Info("cleared stale csvs", "dir", dir, "count", len(matches))
		}
	}
	return nil
}

// WriteBuildingReports writes, for every building group with at least one
// student, the group master CSV, the category subset CSVs, and a combined
// workbook folding those CSVs into one sheet each. Students whose
// residence school belongs to no group land in the Uncategorized extract.
func (w *Writer) WriteBuildingReports(rs *engine.ResultSet) error {
	cols := w.Columns()
	grouped := make(map[int64]bool)

	for _, group := range w.Config.GroupNames() {
		schools := make(map[string]bool)
		for _, s := range w.Config.BuildingGroups[group] {
			schools[s] = true
		}

		var members []*record.Result
		for _, r := range rs.All() {
			if schools[r.SchoolOfResidence] {
				members = append(members, r)
				grouped[r.StudentNumber] = true
			}
		}
		if len(members) == 0 {
			continue
		}

		dir := filepath.Join(w.OutDir, group)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create building folder: %w", err)
		}

		master := fmt.Sprintf("%s_attendance.csv", group)
		if err := w.writeCSV(filepath.Join(dir, master), members, cols); err != nil {
			return err
		}
		if err := w.writeSubsets(dir, group, members, cols); err != nil {
			return err
		}
		if err := combineWorkbook(dir, fmt.Sprintf("%s_combined_workbook.xlsx", group), group); err != nil {
			return err
		}
		slog.Info("building report written", "group", group, "students", len(members))
	}

	var uncategorized []*record.Result
	for _, r := range rs.All() {
		if !grouped[r.StudentNumber] {
			uncategorized = append(uncategorized, r)
		}
	}
	if len(uncategorized) > 0 {
		dir := filepath.Join(w.OutDir, "Uncategorized")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create uncategorized folder: %w", err)
		}
		if err := w.writeCSV(filepath.Join(dir, "uncategorized_attendance.csv"), uncategorized, cols); err != nil {
			return err
		}
		slog.Info("uncategorized extract written", "students", len(uncategorized))
	}
	return nil
}

// WriteFinalReport writes the district-wide report covering every result.
func (w *Writer) WriteFinalReport(rs *engine.ResultSet) error {
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.OutDir, FinalReportName)
	if err := w.writeCSV(path, rs.All(), w.Columns()); err != nil {
		return err
	}
	slog.Info("final report written", "path", path, "students", rs.Len())
	return nil
}

// WriteAltHRReport writes the extract covering students attending the
// configured alternative and home-rebound schools. Nothing is written when
// no student attends one.
func (w *Writer) WriteAltHRReport(rs *engine.ResultSet) error {
	include := make(map[string]bool)
	for _, s := range w.Config.AltSchools {
		include[s] = true
	}

	var members []*record.Result
	for _, r := range rs.All() {
		if include[r.AttendingSchool] {
			members = append(members, r)
		}
	}
	if len(members) == 0 {
		slog.Info("no students attending alt or HR schools, skipping extract")
		return nil
	}

	dir := filepath.Join(w.OutDir, "alt and HR")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create alt and HR folder: %w", err)
	}
	return w.writeCSV(filepath.Join(dir, "alt_and_HR_report.csv"), members, w.Columns())
}
