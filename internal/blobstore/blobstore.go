// Package blobstore uploads proof images and issues time-limited URLs for them.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Yadlapure/health-care/internal/shared/apperror"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeGet  Mode = "get"
	ModePut  Mode = "put"
	ModeBoth Mode = "both"
)

const (
	FolderCheckIn      = "checkin"
	FolderCheckOut     = "checkout"
	FolderPrescription = "prescription"
)

var (
	ErrCredentialsUnavailable = apperror.Dependency(errors.New("credentials_unavailable"), "Object storage credentials are unavailable")
	ErrUploadFailed           = apperror.Dependency(errors.New("upload_failed"), "Image upload failed")
	ErrPresignFailed          = apperror.Dependency(errors.New("presign_failed"), "Could not sign image URL")
	ErrEmptyKey               = apperror.InvalidField("Object Key")
	ErrInvalidMode            = apperror.InvalidField("Mode")
)

type PresignedURL struct {
	Get string `json:"get,omitempty"`
	Put string `json:"put,omitempty"`
}

//go:generate mockgen -source=blobstore.go -destination=mock/blobstore_mock.go -package=mock
type Store interface {
	// Put stores data under objectKey plus the final extension and returns the stored key.
	Put(ctx context.Context, objectKey string, data []byte, extensionHint string) (string, error)
	Presign(ctx context.Context, objectKey string, mode Mode) (PresignedURL, error)
}

// NewObjectKey builds a collision-free key without extension, e.g.
// checkin/2024-01-02/V000012/6f1c....
func NewObjectKey(folder, visitID string, at time.Time) string {
	return path.Join(folder, at.UTC().Format("2006-01-02"), visitID, uuid.NewString())
}

// VisitIDOf reads the visit id back out of a key built by NewObjectKey.
func VisitIDOf(key string) (string, bool) {
	parts := strings.Split(key, "/")
	if len(parts) != 4 || parts[2] == "" {
		return "", false
	}
	switch parts[0] {
	case FolderCheckIn, FolderCheckOut, FolderPrescription:
		return parts[2], true
	}
	return "", false
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func uploadErr(err error) error {
	return fmt.Errorf("%w: %v", ErrUploadFailed, err)
}
