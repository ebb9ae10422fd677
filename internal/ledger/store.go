package ledger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/districtops/atttrack/internal/record"
	"github.com/districtops/atttrack/internal/tabular"
)

// Store is the persistence port for the rolling attendance ledger. The
// rollover engine speaks only this interface so comparisons can be tested
// against in-memory ledgers.
type Store interface {
	// Exists reports whether a ledger has ever been written.
	Exists() (bool, error)

	// Read returns every ledger entry. A ledger that exists but cannot be
	// parsed yields an Error with CodeCorrupt.
	Read() ([]record.LedgerEntry, error)

	// Write replaces the full ledger contents.
	Write(entries []record.LedgerEntry) error

	// Backup copies the current ledger aside, stamped with ts. It must
	// complete before any Write that follows it.
	Backup(ts time.Time) (string, error)
}

// backupStamp is the timestamp layout appended to backup file names.
const backupStamp = "01-02-15-04-05"

// FileStore persists the ledger as a CSV file with sibling timestamped
// backups, e.g. base_file.csv and base_file_03-17-09-30-00.csv.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore for the ledger at path.
func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (s *FileStore) Exists() (bool, error) {
	_, err := os.Stat(s.Path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, &Error{Code: CodeIO, Path: s.Path, Err: err}
	}
	return true, nil
}

func (s *FileStore) Read() ([]record.LedgerEntry, error) {
	mapping := make(map[string]string, len(record.LedgerColumns))
	for _, c := range record.LedgerColumns {
		mapping[c] = c
	}

	rows, err := tabular.ReadTableStrict(s.Path, mapping)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Code: CodeIO, Path: s.Path, Err: err}
		}
		return nil, &Error{Code: CodeCorrupt, Path: s.Path, Err: err}
	}

	entries := make([]record.LedgerEntry, 0, len(rows))
	for i, row := range rows {
		entry, err := parseEntry(row)
		if err != nil {
			return nil, &Error{Code: CodeCorrupt, Path: s.Path, Err: fmt.Errorf("row %d: %w", i+1, err)}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseEntry(row tabular.Row) (record.LedgerEntry, error) {
	var e record.LedgerEntry

	id, ok := row.Int64(record.ColStudentNumber)
	if !ok {
		return e, fmt.Errorf("missing %s", record.ColStudentNumber)
	}
	age, ok := row.Int64(record.ColWeeklyValue)
	if !ok {
		return e, fmt.Errorf("missing %s", record.ColWeeklyValue)
	}
	percent, ok := row.Float(record.ColIndAttPercent)
	if !ok {
		return e, fmt.Errorf("missing %s", record.ColIndAttPercent)
	}

	e.StudentNumber = id
	e.Age = int(age)
	e.AttPercent = percent
	e.Name, _ = row.String(record.ColName)
	e.Grade, _ = row.String(record.ColGrade)
	e.HrsAttended, _ = row.Float(record.ColHrsAttended)
	e.HrsAbsent, _ = row.Float(record.ColHrsAbsent)
	e.HrsPossible, _ = row.Float(record.ColHrsPossible)
	return e, nil
}

func (s *FileStore) Write(entries []record.LedgerEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.StudentNumber),
			e.Name,
			e.Grade,
			formatHours(e.HrsAttended),
			formatHours(e.HrsAbsent),
			formatHours(e.HrsPossible),
			record.FormatPercent(e.AttPercent),
			fmt.Sprintf("%d", e.Age),
		})
	}
	if err := tabular.WriteCSV(s.Path, record.LedgerColumns, rows); err != nil {
		return &Error{Code: CodeIO, Path: s.Path, Err: err}
	}
	return nil
}

func (s *FileStore) Backup(ts time.Time) (string, error) {
	backupPath := backupName(s.Path, ts)
	if err := copyFile(s.Path, backupPath); err != nil {
		return "", &Error{Code: CodeIO, Path: backupPath, Err: err}
	}
	return backupPath, nil
}

// backupName builds the sibling backup path for a ledger path and stamp.
func backupName(path string, ts time.Time) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, ts.Format(backupStamp), ext))
}

// LatestBackup returns the most recently modified backup sibling of the
// ledger at path.
func LatestBackup(path string) (string, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]

	matches, err := filepath.Glob(filepath.Join(dir, stem+"_*"+ext))
	if err != nil {
		return "", &Error{Code: CodeIO, Path: dir, Err: err}
	}
	var newest string
	var newestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = m
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", &Error{Code: CodeNoBackup, Path: path}
	}
	return newest, nil
}

// Restore overwrites the ledger at path with its most recent backup and
// returns the backup used.
func Restore(path string) (string, error) {
	backup, err := LatestBackup(path)
	if err != nil {
		return "", err
	}
	if err := copyFile(backup, path); err != nil {
		return "", &Error{Code: CodeIO, Path: path, Err: err}
	}
	return backup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func formatHours(v float64) string {
	// Hours are whole in practice but fractional values must round-trip.
	return fmt.Sprintf("%g", v)
}

// MemStore is an in-memory Store for tests and dry runs. Backups record the
// entries as they stood at backup time so ordering invariants can be
// asserted.
type MemStore struct {
	Entries []record.LedgerEntry
	Existed bool
	Backups [][]record.LedgerEntry

	// ReadErr, if set, is returned by Read. Used to exercise corruption
	// handling.
	ReadErr error
}

// NewMemStore returns a MemStore seeded with entries. A store seeded with a
// nil slice behaves as a never-written ledger.
func NewMemStore(entries []record.LedgerEntry) *MemStore {
	return &MemStore{Entries: entries, Existed: entries != nil}
}

func (m *MemStore) Exists() (bool, error) { return m.Existed, nil }

func (m *MemStore) Read() ([]record.LedgerEntry, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([]record.LedgerEntry, len(m.Entries))
	copy(out, m.Entries)
	return out, nil
}

func (m *MemStore) Write(entries []record.LedgerEntry) error {
	m.Entries = make([]record.LedgerEntry, len(entries))
	copy(m.Entries, entries)
	m.Existed = true
	return nil
}

func (m *MemStore) Backup(time.Time) (string, error) {
	snap := make([]record.LedgerEntry, len(m.Entries))
	copy(snap, m.Entries)
	m.Backups = append(m.Backups, snap)
	return "mem-backup", nil
}
