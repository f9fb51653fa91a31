package storage

import (
	"context"
	"io"

	"taskflow/internal/models"
)

// Upload describes a single file handed to an uploader. Content is fully
// buffered by the handler so the fallback chain can retry the same bytes.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.ReadSeeker
}

// Uploader defines the interface for a single upload destination.
type Uploader interface {
	// Upload stores the file and returns its attachment descriptor.
	Upload(ctx context.Context, file Upload, folder string) (*models.Attachment, error)
}

// Ensure concrete types implement Uploader
var (
	_ Uploader = (*S3Uploader)(nil)
	_ Uploader = (*HTTPUploader)(nil)
	_ Uploader = (*Chain)(nil)
)
