package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"taskflow/internal/models"
)

// HTTPUploader posts files to a file.io-style anonymous hosting endpoint.
// It is the best-effort secondary destination behind the S3 primary.
type HTTPUploader struct {
	endpoint string
	client   *http.Client
}

// NewHTTPUploader creates an uploader targeting the given endpoint.
func NewHTTPUploader(endpoint string) *HTTPUploader {
	return &HTTPUploader{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// fileHostResponse is the subset of the host's reply we care about.
type fileHostResponse struct {
	Success bool   `json:"success"`
	Link    string `json:"link"`
	Key     string `json:"key"`
}

// Upload posts the file as a multipart form and returns the hosted link.
func (h *HTTPUploader) Upload(ctx context.Context, file Upload, folder string) (*models.Attachment, error) {
	if _, err := file.Content.Seek(0, 0); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fallback upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback upload: unexpected status %d", resp.StatusCode)
	}

	var result fileHostResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("fallback upload: decode response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("fallback upload: host rejected file")
	}

	return &models.Attachment{
		URL:         result.Link,
		Key:         result.Key,
		Name:        file.Name,
		Size:        file.Size,
		ContentType: file.ContentType,
		UploadedAt:  time.Now().UTC(),
	}, nil
}
