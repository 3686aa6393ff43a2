package ingest

import "errors"

var (
	// ErrUnreadableInput marks input that is neither valid JSON nor
	// salvageable. Nothing is persisted.
	ErrUnreadableInput = errors.New("unreadable input")

	// ErrUnknownOperator marks an explicit operator id that does not
	// resolve. The import aborts before any write.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrImportFailed marks a hard failure after the test run row was
	// created; everything written during the invocation has been rolled
	// back.
	ErrImportFailed = errors.New("import failed")
)
