package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/arizona-prime/community-api/pkg/storage"
)

// Errors surfaced by the avatar upload gate.
var (
	ErrUploadMissing        = errors.New("no file provided")
	ErrUploadTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
)

// Extensions by sniffed MIME type. Only raster image formats the frontend
// can render are accepted.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AvatarService validates image uploads and hands them to the configured
// storage backend. Validation is a boundary gate: size first, then the
// content-sniffed MIME type; the client-supplied filename and content type
// are never trusted.
type AvatarService interface {
	StoreUserAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error)
	StoreLeadershipAvatar(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type avatarService struct {
	storage storage.FileStorage
	maxSize int64
	logger  zerolog.Logger
}

// NewAvatarService constructs the avatar upload service.
func NewAvatarService(store storage.FileStorage, maxSizeMB int, logger zerolog.Logger) AvatarService {
	if maxSizeMB <= 0 {
		maxSizeMB = 3
	}
	return &avatarService{
		storage: store,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		logger:  logger.With().Str("component", "avatar_service").Logger(),
	}
}

// StoreUserAvatar stores a user avatar under a name keyed by user id, so a
// re-upload replaces the previous file.
func (s *avatarService) StoreUserAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	data, ext, err := s.validate(file)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("avatars/avatar_%d%s", userID, ext)
	return s.storage.Store(ctx, name, bytes.NewReader(data))
}

// StoreLeadershipAvatar stores a leadership portrait under a timestamped
// name.
func (s *avatarService) StoreLeadershipAvatar(ctx context.Context, file *multipart.FileHeader) (string, error) {
	data, ext, err := s.validate(file)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("leadership/leadership_%d%s", time.Now().UnixNano(), ext)
	return s.storage.Store(ctx, name, bytes.NewReader(data))
}

func (s *avatarService) validate(file *multipart.FileHeader) ([]byte, string, error) {
	if file == nil {
		return nil, "", ErrUploadMissing
	}
	if file.Size > s.maxSize {
		return nil, "", ErrUploadTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > s.maxSize {
		return nil, "", ErrUploadTooLarge
	}
	if len(data) == 0 {
		return nil, "", ErrUploadMissing
	}

	detected := mimetype.Detect(data)
	ext, ok := allowedImageTypes[detected.String()]
	if !ok {
		s.logger.Warn().Str("mime", detected.String()).Msg("rejected upload with disallowed type")
		return nil, "", ErrUploadTypeNotAllowed
	}

	return data, ext, nil
}
