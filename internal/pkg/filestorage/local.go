package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/campusgate/admission-portal/internal/pkg/logger"
)

// LocalStorage stores uploaded files on the local filesystem.
type LocalStorage struct {
	basePath string // root directory for stored files
	baseURL  string // URL prefix under which basePath is served
}

// NewLocalStorage creates a LocalStorage rooted at basePath. Files are
// addressable under baseURL, which must match the static file route.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save persists an uploaded file under an optional subdirectory.
// Filenames are replaced with a UUID to prevent collisions; the original
// name survives in the document record.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dirPath := ls.basePath
	if subPath != "" {
		dirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueName := uuid.New().String() + ext

	key := uniqueName
	if subPath != "" {
		key = subPath + "/" + uniqueName
	}

	dstPath := filepath.Join(dirPath, uniqueName)
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	stored := &StoredFile{
		URL: ls.baseURL + "/" + key,
		Key: key,
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("key", key).
		Msg("File saved")

	return stored, nil
}

// Delete removes a stored file by its key. Missing files are treated as
// already deleted.
func (ls *LocalStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	// Reject anything that would escape the storage root
	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid storage key: %s", key)
	}

	physicalPath := filepath.Join(ls.basePath, cleaned)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
