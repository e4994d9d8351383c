package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for storing and retrieving binary objects
// addressed by storage key.
type ObjectStore interface {
	Save(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
