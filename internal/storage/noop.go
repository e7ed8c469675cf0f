package storage

import (
	"context"
	"io"
)

// Noop satisfies Storage when no bucket is configured; uploads are rejected.
type Noop struct{}

var _ Storage = (*Noop)(nil)

func (Noop) Upload(context.Context, string, io.Reader, string) error {
	return ErrNotConfigured
}

func (Noop) Download(context.Context, string) (io.ReadCloser, error) {
	return nil, ErrNotConfigured
}

func (Noop) Delete(context.Context, string) error {
	return ErrNotConfigured
}

func (Noop) Exists(context.Context, string) (bool, error) {
	return false, ErrNotConfigured
}
