package storage

import (
	"context"
	"log"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"
)

// Chain tries an ordered list of uploaders, stopping at the first success.
// Only when every destination fails does the upload count as failed.
type Chain struct {
	uploaders []Uploader
}

// NewChain creates an upload chain. Order matters: the primary destination
// comes first, fallbacks after it.
func NewChain(uploaders ...Uploader) *Chain {
	return &Chain{uploaders: uploaders}
}

// Upload tries each destination in order.
func (c *Chain) Upload(ctx context.Context, file Upload, folder string) (*models.Attachment, error) {
	var lastErr error

	for i, uploader := range c.uploaders {
		attachment, err := uploader.Upload(ctx, file, folder)
		if err == nil {
			return attachment, nil
		}
		lastErr = err
		if i < len(c.uploaders)-1 {
			log.Printf("Upload of %q failed, trying next destination: %v", file.Name, err)
		}
	}

	if lastErr != nil {
		log.Printf("Upload of %q failed on all destinations: %v", file.Name, lastErr)
	}
	return nil, apperrors.ErrUploadFailed
}
