package model

import (
	"context"
	"io"
)

// AvatarStorage stores uploaded avatar images by key.
type AvatarStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
