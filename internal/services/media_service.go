package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
)

var allowedMediaExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".mp3":  true,
	".ogg":  true,
	".wav":  true,
}

// MediaService stores uploaded card images and audio on disk
type MediaService interface {
	// SaveUpload writes the upload under the media directory with a random
	// name and returns the public path.
	SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type mediaService struct {
	dir      string
	maxBytes int64
}

// NewMediaService creates a new MediaService
func NewMediaService(dir string, maxBytes int64) MediaService {
	return &mediaService{dir: dir, maxBytes: maxBytes}
}

func (s *mediaService) SaveUpload(ctx context.Context, filename string, r io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedMediaExts[ext] {
		return "", errors.NewValidationError("file", fmt.Sprintf("unsupported file type %q", ext))
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		log.Error("failed to create media dir: %v", err)
		return "", errors.NewInternalError(err)
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		log.Error("failed to create media file: %v", err)
		return "", errors.NewInternalError(err)
	}
	defer f.Close()

	// One byte past the cap distinguishes "at the limit" from "over it".
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(dst)
		log.Error("failed to write media file: %v", err)
		return "", errors.NewInternalError(err)
	}
	if n > s.maxBytes {
		os.Remove(dst)
		return "", errors.NewBadRequestError(fmt.Sprintf("file exceeds the %d byte upload limit", s.maxBytes))
	}

	log.Info("media file stored: %s (%d bytes)", name, n)
	return "/media/" + name, nil
}
