// Package storage provides object storage for user-uploaded media:
// child avatars, progress photos and resource thumbnails. Uploads and
// downloads go through presigned URLs so file bytes never pass through
// the API server.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ObjectStorage abstracts an S3-compatible object store
type ObjectStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for a key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for a key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an object
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether an object is present
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// AvatarKey builds the storage key for a child's avatar
func AvatarKey(childID uuid.UUID, ext string) string {
	return fmt.Sprintf("avatars/%s%s", childID, ext)
}

// ProgressPhotoKey builds the storage key for a progress record photo
func ProgressPhotoKey(childID, recordID uuid.UUID, ext string) string {
	return fmt.Sprintf("progress/%s/%s%s", childID, recordID, ext)
}

// ThumbnailKey builds the storage key for a resource thumbnail
func ThumbnailKey(resourceID uuid.UUID, ext string) string {
	return fmt.Sprintf("thumbnails/%s%s", resourceID, ext)
}
