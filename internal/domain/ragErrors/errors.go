// Package ragErrors defines the error taxonomy shared by the core
// packages. Nothing here is fatal to the process: every one of these is
// carried back to the caller as a report entry or response message.
package ragErrors

import (
	"errors"
	"fmt"
)

// ErrNotInitialized distinguishes "no documents were ever indexed" from
// "no relevant matches". Surfaced by the retriever when the collection
// does not exist yet.
var ErrNotInitialized = errors.New("vector store not initialized: no documents have been ingested")

// InputError covers caller mistakes: empty query, no files, wrong
// extension. Reported directly, never retried.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

func NewInputError(format string, args ...any) *InputError {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// ExtractionError is per-file; the ingest batch continues past it.
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// StoreError wraps vector store write/query failures.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("vector store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ApiError is any completion capability failure: auth, rate limit,
// network. All surface with a message; no automatic retry.
type ApiError struct {
	Provider string
	Err      error
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *ApiError) Unwrap() error { return e.Err }
