// Package ledger maintains the rotating three-slot attendance history: the
// entries appended in the previous run (age -1, read back as "one week
// back"), the run before that (age -2, "two weeks back"), and the expiring
// slot (age -3, dropped on rollover).
//
// Reads always come from the pre-rollover ledger; the rollover mutation is
// a separate, explicit step so the age decrement can never pollute the
// snapshots a run compares against. The caller performs at most one
// rollover per invocation, and none at all in dry-run mode.
package ledger

import (
	"log/slog"
	"time"

	"github.com/districtops/atttrack/internal/record"
)

// Ledger exposes the stable read view and the rollover mutation over a
// Store.
type Ledger struct {
	store Store
	now   func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithNow overrides the timestamp source used for backup names.
func WithNow(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger over the given store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// PriorWeeks reads the pre-rollover ledger and splits it into the one-week-
// back (age -1) and two-weeks-back (age -2) snapshots. A ledger that has
// never been written yields two empty snapshots: the bootstrap case, where
// the current week has nothing to be compared against.
func (l *Ledger) PriorWeeks() (oneWeekBack, twoWeeksBack []record.SnapshotRecord, err error) {
	exists, err := l.store.Exists()
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, nil
	}

	entries, err := l.store.Read()
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		switch e.Age {
		case record.AgeOneWeekBack:
			oneWeekBack = append(oneWeekBack, e.SnapshotRecord)
		case record.AgeTwoWeeks:
			twoWeeksBack = append(twoWeeksBack, e.SnapshotRecord)
		}
	}
	return oneWeekBack, twoWeeksBack, nil
}

// Rollover ages the ledger by one week and appends the current snapshot.
//
// Bootstrap: if no ledger exists yet, the current snapshot becomes the
// entire ledger at age -1 and no backup is taken (there is nothing to lose).
//
// Otherwise: a timestamped backup is written first and must succeed before
// any mutation; then every entry's age decrements by one, entries at or
// beyond the expiry age are dropped, the current snapshot is appended at
// age -1, and the full ledger is persisted.
func (l *Ledger) Rollover(current []record.SnapshotRecord) error {
	exists, err := l.store.Exists()
	if err != nil {
		return err
	}
	if !exists {
		slog.Info("no ledger found, bootstrapping", "students", len(current))
		return l.store.Write(appendCurrent(nil, current))
	}

	backupPath, err := l.store.Backup(l.now())
	if err != nil {
		return err
	}
	slog.Info("ledger backed up", "backup", backupPath)

	entries, err := l.store.Read()
	if err != nil {
		return err
	}

	aged := make([]record.LedgerEntry, 0, len(entries)+len(current))
	dropped := 0
	for _, e := range entries {
		e.Age--
		if e.Age <= record.AgeExpired {
			dropped++
			continue
		}
		aged = append(aged, e)
	}
	aged = appendCurrent(aged, current)

	if err := l.store.Write(aged); err != nil {
		return err
	}
	slog.Info("ledger rolled over",
		"appended", len(current),
		"expired", dropped,
		"total", len(aged),
	)
	return nil
}

func appendCurrent(entries []record.LedgerEntry, current []record.SnapshotRecord) []record.LedgerEntry {
	for _, s := range current {
		entries = append(entries, record.LedgerEntry{SnapshotRecord: s, Age: record.AgeCurrent})
	}
	return entries
}
