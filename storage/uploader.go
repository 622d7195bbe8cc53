package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored emblem image: the object key kept on
// the unit record plus the public location and ETag the backend assigned.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores and serves unit emblem images. Keys are opaque to
// callers; the unit service persists the key and resolves display URLs
// through GetPublicURL on read.
type FileUploader interface {
	// Upload writes the emblem under key and returns where it landed.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete removes a previously uploaded emblem. Used when a unit
	// replaces its emblem, so stale objects do not accumulate.
	Delete(ctx context.Context, key string) error

	// GetPublicURL returns the browser-facing URL for a stored key.
	GetPublicURL(key string) string
}
