package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument means extraction produced no text, so there is
	// nothing to chunk or index.
	ErrEmptyDocument = errors.New("no text content extracted from document")

	// ErrEmbeddingUnavailable means no embedding service is configured;
	// document ingestion cannot proceed without one.
	ErrEmbeddingUnavailable = errors.New("no embedding service configured")

	// ErrProviderUnavailable means the requested provider has no
	// credentials configured.
	ErrProviderUnavailable = errors.New("provider has no credentials configured")

	// ErrNoProviders means no network provider credentials are configured
	// at all; only the rule-based responder can answer.
	ErrNoProviders = errors.New("no answer providers configured")
)

// VectorStoreError wraps an index read or write failure with the operation
// that failed.
type VectorStoreError struct {
	Op  string
	Err error
}

func (e *VectorStoreError) Error() string {
	return fmt.Sprintf("vector store %s: %v", e.Op, e.Err)
}

func (e *VectorStoreError) Unwrap() error {
	return e.Err
}
