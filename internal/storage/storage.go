// Package storage keeps uploaded images outside the database.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
)

//go:generate mockgen -source=./storage.go -destination=../mocks/mock_image_store.go -package=mocks ImageStore

// ImageStore persists image bytes under a key and serves them by URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	Enabled() bool
}

// Disabled is the ImageStore used when no bucket is configured. Uploads fail
// with domain.ErrStorageDisabled.
type Disabled struct{}

func (Disabled) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	return "", domain.ErrStorageDisabled
}

func (Disabled) Delete(ctx context.Context, key string) error { return nil }

func (Disabled) URL(key string) string { return "" }

func (Disabled) Enabled() bool { return false }

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageExtension returns the file extension for an accepted image content
// type, or false when the type is not accepted.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// CleanFilename strips directories and unsafe characters from an uploaded
// filename.
func CleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return "image"
	}
	return cleaned
}
