package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/config"
	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/storage"
)

// ObjectStorage issues presigned URLs. Satisfied by *storage.Client.
type ObjectStorage interface {
	PresignUpload(ctx context.Context, key, contentType string) (*storage.PresignedURL, error)
	PresignDownload(ctx context.Context, key string) (*storage.PresignedURL, error)
}

// FileService hands out presigned URLs for user-owned files.
type FileService struct {
	storage ObjectStorage
	config  *config.Config
}

// NewFileService creates a new FileService. A nil storage disables file endpoints.
func NewFileService(objectStorage ObjectStorage, cfg *config.Config) *FileService {
	return &FileService{
		storage: objectStorage,
		config:  cfg,
	}
}

// CreateUploadURL returns a presigned PUT URL under users/{id}/{kind}/.
func (s *FileService) CreateUploadURL(ctx context.Context, session *models.Session, req *models.UploadURLRequest) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	kind, err := storage.ParseKind(req.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrInvalidFile)
	}
	if err := storage.ValidateContentType(kind, req.ContentType); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrInvalidFile)
	}
	if limit := s.config.Storage.MaxUploadBytes; limit > 0 && req.Size > limit {
		return nil, fmt.Errorf("file exceeds %d bytes: %w", limit, ErrInvalidFile)
	}

	key := storage.UserObjectKey(session.UserID, kind, req.FileName)
	url, err := s.storage.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, err
	}

	logger.Info("Upload URL issued",
		zap.String("user_id", session.UserID),
		zap.String("kind", string(kind)))

	return url, nil
}

// CreateDownloadURL returns a presigned GET URL for a key the caller owns.
// Admins may read any key.
func (s *FileService) CreateDownloadURL(ctx context.Context, session *models.Session, key string) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if key == "" {
		return nil, fmt.Errorf("key is required: %w", ErrInvalidFile)
	}
	if !session.IsAdmin() && !storage.OwnedBy(key, session.UserID) {
		return nil, ErrFileNotOwned
	}
	return s.storage.PresignDownload(ctx, key)
}

// presignDownload signs a key already authorized by the caller.
func (s *FileService) presignDownload(ctx context.Context, key string) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	return s.storage.PresignDownload(ctx, key)
}
