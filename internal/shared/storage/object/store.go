package object

import (
	"context"
	"io"
	"time"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// Deleter is implemented by stores that can remove objects.
type Deleter interface {
	Delete(ctx context.Context, storageKey string) error
}

// Presigner is implemented by stores that can mint time-limited download URLs.
type Presigner interface {
	PresignGet(ctx context.Context, storageKey string, expiry time.Duration) (string, error)
}
