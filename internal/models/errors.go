package models

import "fmt"

// Error taxonomy for the record core. All are recoverable at the
// boundary; none corrupts in-memory or persisted state.

// ValidationError reports a missing or malformed required field at
// create/update time.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation referencing an id absent from the
// collection.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ImportError reports a malformed or unreadable snapshot. The import is
// aborted with no partial write.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("snapshot import failed: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("snapshot import failed: %s", e.Reason)
}

func (e *ImportError) Unwrap() error { return e.Err }

// StorageError reports an underlying persistence read/write failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
