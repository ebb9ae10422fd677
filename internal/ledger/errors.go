package ledger

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes ledger failures.
type ErrorCode string

const (
	// CodeCorrupt indicates the ledger file exists but cannot be parsed.
	// Silent data loss is worse than a halted run, so corruption is fatal;
	// the recovery path is restoring from the latest timestamped backup.
	CodeCorrupt ErrorCode = "LEDGER_CORRUPT"

	// CodeIO indicates a read, write, or copy failure on the ledger or a
	// backup.
	CodeIO ErrorCode = "LEDGER_IO"

	// CodeNoBackup indicates a restore was requested but no backup file
	// exists next to the ledger.
	CodeNoBackup ErrorCode = "NO_BACKUP"
)

// Error is a ledger failure with a category code and the affected path.
type Error struct {
	Code ErrorCode
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// IsCorrupt reports whether err is a ledger corruption error.
func IsCorrupt(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Code == CodeCorrupt
}
