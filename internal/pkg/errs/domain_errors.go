package errs

import "errors"

// Sentinel errors shared across the ingestion pipeline. Concrete errors are
// attached to these with Mark so callers can branch with errors.Is.
var (
	// Payload could not be mapped to a known event; the payload is kept for triage.
	ErrClassification = errors.New("classification error")
	// Payload was recognized but is internally inconsistent.
	ErrValidation = errors.New("validation error")

	// Lease errors
	ErrLockBusy     = errors.New("lock busy")
	ErrLockNotOwner = errors.New("lock not owner")
	ErrLockExpired  = errors.New("lock expired")

	// Replay of an already applied event. Callers treat this as success.
	ErrStoreConflict = errors.New("store conflict")

	ErrNotFound                = errors.New("not found")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
