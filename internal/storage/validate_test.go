package storage

import (
	"strings"
	"testing"

	apperrors "taskflow/internal/errors"

	"github.com/stretchr/testify/assert"
)

const testMaxBytes = 10 * 1024 * 1024

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		size        int64
		contentType string
		wantErr     error
	}{
		{"png image", "photo.png", 1024, "image/png", nil},
		{"uppercase extension", "REPORT.PDF", 1024, "application/pdf", nil},
		{"pdf document", "report.pdf", 5 * 1024 * 1024, "application/pdf", nil},
		{"video", "demo.mp4", 8 * 1024 * 1024, "video/mp4", nil},
		{"audio", "note.mp3", 1024, "audio/mpeg", nil},
		{"archive", "bundle.zip", 1024, "application/zip", nil},
		{"spreadsheet", "data.xlsx", 1024, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil},
		{"unknown extension but image mime", "photo.heic2", 1024, "image/heic", nil},

		{"exactly at the limit", "edge.png", testMaxBytes, "image/png", nil},
		{"over the limit", "big.png", testMaxBytes + 1, "image/png", apperrors.ErrFileTooLarge},

		{"executable", "malware.exe", 1024, "application/x-msdownload", apperrors.ErrFileTypeNotAllowed},
		{"shell script", "run.sh", 1024, "application/x-sh", apperrors.ErrFileTypeNotAllowed},
		{"no extension unknown mime", "blob", 1024, "application/octet-stream", apperrors.ErrFileTypeNotAllowed},

		// Size is checked first, so an oversized disallowed file reports size.
		{"oversized executable", "malware.exe", testMaxBytes + 1, "application/x-msdownload", apperrors.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := Upload{
				Name:        tt.fileName,
				Size:        tt.size,
				ContentType: tt.contentType,
				Content:     strings.NewReader("data"),
			}

			err := Validate(file, testMaxBytes)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
