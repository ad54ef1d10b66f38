package service

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/storage"
	"github.com/google/uuid"
)

// ImageUpload is one uploaded image file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Caption     string
	Body        io.Reader
}

// checkUploads rejects unsupported content types before anything is stored.
func checkUploads(store storage.ImageStore, field string, uploads []ImageUpload) error {
	if len(uploads) == 0 {
		return nil
	}
	if store == nil || !store.Enabled() {
		return domain.ErrStorageDisabled
	}
	for _, u := range uploads {
		if _, ok := storage.ImageExtension(u.ContentType); !ok {
			return fieldError(field, "Upload a JPEG, PNG, GIF or WebP image.")
		}
	}
	return nil
}

// uploadName builds a collision-free object name that keeps the original
// filename readable.
func uploadName(u ImageUpload) string {
	ext, _ := storage.ImageExtension(u.ContentType)
	base := storage.CleanFilename(u.Filename)
	base = strings.TrimSuffix(base, path.Ext(base))
	return uuid.NewString()[:8] + "-" + base + ext
}

// removeObjects deletes stored objects, logging failures.
func removeObjects(ctx context.Context, store storage.ImageStore, keys []string) {
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "Failed to delete stored image", "key", key, "error", err)
		}
	}
}
