package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arnav/gradlink/internal/pkg/logger"
)

// LocalStorage handles saving uploaded files to the local filesystem
type LocalStorage struct {
	basePath string // The root directory where files are stored
	baseURL  string // Base URL prepended to returned file paths
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveProfilePhoto stores an uploaded profile photo and returns its URL.
// Files are renamed to a UUID to avoid collisions and path tricks.
func (ls *LocalStorage) SaveProfilePhoto(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	subDir := "profile-photos"
	if err := os.MkdirAll(filepath.Join(ls.basePath, subDir), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, subDir, filename)

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return ls.baseURL + "/" + subDir + "/" + filename, nil
}

// Delete removes a stored file given the URL previously returned
func (ls *LocalStorage) Delete(fileURL string) error {
	rel := strings.TrimPrefix(fileURL, ls.baseURL+"/")
	if rel == fileURL || strings.Contains(rel, "..") {
		return fmt.Errorf("refusing to delete path outside storage: %s", fileURL)
	}
	return os.Remove(filepath.Join(ls.basePath, filepath.FromSlash(rel)))
}
