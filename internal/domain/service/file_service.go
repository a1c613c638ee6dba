package service

import (
	"context"
	"io"
)

// FileStorage stores blobs at caller-chosen object paths and returns a
// public URL. Writing an existing path replaces the object.
type FileStorage interface {
	UploadFile(ctx context.Context, file io.Reader, contentType, objectPath string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
