package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	attachment *models.Attachment
	err        error
	calls      int
}

func (s *stubUploader) Upload(ctx context.Context, file Upload, folder string) (*models.Attachment, error) {
	s.calls++
	return s.attachment, s.err
}

func testFile() Upload {
	return Upload{Name: "photo.png", Size: 100, ContentType: "image/png", Content: strings.NewReader("data")}
}

func TestChain_Upload(t *testing.T) {
	t.Run("first success wins and later destinations are untouched", func(t *testing.T) {
		primary := &stubUploader{attachment: &models.Attachment{URL: "https://primary/photo.png"}}
		fallback := &stubUploader{attachment: &models.Attachment{URL: "https://fallback/photo.png"}}

		chain := NewChain(primary, fallback)

		att, err := chain.Upload(context.Background(), testFile(), "tasks")

		require.NoError(t, err)
		assert.Equal(t, "https://primary/photo.png", att.URL)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 0, fallback.calls)
	})

	t.Run("falls through to the next destination on failure", func(t *testing.T) {
		primary := &stubUploader{err: errors.New("bucket unreachable")}
		fallback := &stubUploader{attachment: &models.Attachment{URL: "https://fallback/photo.png"}}

		chain := NewChain(primary, fallback)

		att, err := chain.Upload(context.Background(), testFile(), "tasks")

		require.NoError(t, err)
		assert.Equal(t, "https://fallback/photo.png", att.URL)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("all destinations failing yields a single upload error", func(t *testing.T) {
		primary := &stubUploader{err: errors.New("bucket unreachable")}
		fallback := &stubUploader{err: errors.New("host down")}

		chain := NewChain(primary, fallback)

		att, err := chain.Upload(context.Background(), testFile(), "tasks")

		assert.Nil(t, att)
		assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	})

	t.Run("empty chain fails", func(t *testing.T) {
		chain := NewChain()

		_, err := chain.Upload(context.Background(), testFile(), "tasks")

		assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	})
}
