package quotes

import "fmt"

// ValidationError means a required field was missing or invalid. It is
// raised before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// UploadFailedError aborts the submission: one attachment could not be
// stored, so no record is written.
type UploadFailedError struct {
	Filename string
	Err      error
}

func (e *UploadFailedError) Error() string {
	return fmt.Sprintf("upload failed for %s: %v", e.Filename, e.Err)
}

func (e *UploadFailedError) Unwrap() error { return e.Err }

// PersistFailedError aborts the submission after uploads succeeded: the
// quote record could not be inserted, so no notification is sent.
type PersistFailedError struct {
	Err error
}

func (e *PersistFailedError) Error() string {
	return fmt.Sprintf("failed to save quote request: %v", e.Err)
}

func (e *PersistFailedError) Unwrap() error { return e.Err }
