package storage

import (
	"path/filepath"
	"strings"

	apperrors "taskflow/internal/errors"
)

// allowedExtensions is the extension allow-list for attachments: images,
// documents, video, audio and archives.
var allowedExtensions = map[string]bool{
	// Images
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
	"bmp": true, "svg": true, "ico": true, "tiff": true,
	// Documents
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true,
	"ppt": true, "pptx": true, "txt": true, "rtf": true, "csv": true,
	// Videos
	"mp4": true, "webm": true, "ogv": true, "mov": true, "avi": true, "mkv": true,
	// Audio
	"mp3": true, "wav": true, "ogg": true, "m4a": true, "flac": true,
	// Archives
	"zip": true, "rar": true, "7z": true, "tar": true, "gz": true,
}

// allowedMIMEPrefixes accepts whole media classes by prefix.
var allowedMIMEPrefixes = []string{"image/", "video/", "audio/"}

// allowedMIMETypes is the explicit MIME allow-list for non-media files.
var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-powerpoint":                                     true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain": true, "text/csv": true, "text/rtf": true,
	"application/zip":              true,
	"application/x-rar-compressed": true,
	"application/x-7z-compressed":  true,
	"application/x-tar":            true,
	"application/gzip":             true,
}

// Validate checks an upload against the size limit and the type allow-list.
// It runs before any network call so a rejected file never reaches a remote
// host.
func Validate(file Upload, maxBytes int64) error {
	if file.Size > maxBytes {
		return apperrors.ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Name), "."))
	if allowedExtensions[ext] {
		return nil
	}

	mime := strings.ToLower(file.ContentType)
	if allowedMIMETypes[mime] {
		return nil
	}
	for _, prefix := range allowedMIMEPrefixes {
		if strings.HasPrefix(mime, prefix) {
			return nil
		}
	}

	return apperrors.ErrFileTypeNotAllowed
}
