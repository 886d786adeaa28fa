package storage

import (
	"context"
	"errors"
)

// ErrVersionMismatch is returned by WriteIfMatch when the version token no
// longer matches the remote document, meaning someone else wrote in between.
var ErrVersionMismatch = errors.New("remote document version mismatch")

// Snapshot is one read of the remote plan document: its raw content plus the
// opaque version token identifying exactly that state.
type Snapshot struct {
	Content []byte
	Version string
}

// Commit describes a successful conditional write.
type Commit struct {
	URL string
	SHA string
}

// PlanStore defines the interface for the versioned remote document store.
// Read captures the current version token; WriteIfMatch only succeeds when
// that token still matches, which is the sole concurrency guard on publish.
type PlanStore interface {
	Read(ctx context.Context) (*Snapshot, error)
	WriteIfMatch(ctx context.Context, content []byte, version, message string) (*Commit, error)
}
