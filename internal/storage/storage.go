package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound      = errors.New("object not found")
	ErrNotConfigured = errors.New("object storage not configured")
)

type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
