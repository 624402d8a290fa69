package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorage persists uploaded files and returns the stored path that goes
// into history rows. Implementations must not leave partial files behind on
// failure.
type FileStorage interface {
	Save(file *multipart.FileHeader, prefix string) (string, error)
}

// LocalFileStorage stores uploads on disk under UPLOAD_PATH, sharded by
// year/month: uploads/2026/01/<prefix>_<uuid>.<ext>.
type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) *LocalFileStorage {
	if basePath == "" {
		basePath = os.Getenv("UPLOAD_PATH")
	}
	if basePath == "" {
		basePath = "./uploads"
	}
	return &LocalFileStorage{basePath: basePath}
}

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".zip":  true,
}

const maxUploadSize = 25 * 1024 * 1024 // 25MB

// Save writes the upload to disk and returns the stored path. The returned
// path, never the raw upload name, is what callers record.
func (s *LocalFileStorage) Save(file *multipart.FileHeader, prefix string) (string, error) {
	if file == nil || file.Size == 0 {
		return "", newValidationError("no file uploaded")
	}
	if file.Size > maxUploadSize {
		return "", newValidationError("file size exceeds %dMB limit", maxUploadSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		return "", newValidationError("file type '%s' not allowed", ext)
	}

	subDir := filepath.Join(s.basePath, time.Now().Format("2006/01"))
	if err := os.MkdirAll(subDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	storedName := fmt.Sprintf("%s_%s%s", sanitizePrefix(prefix), uuid.NewString(), ext)
	fullPath := filepath.Join(subDir, storedName)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}

	return fullPath, nil
}

func sanitizePrefix(prefix string) string {
	prefix = strings.TrimSpace(strings.ToLower(prefix))
	if prefix == "" {
		return "file"
	}
	var b strings.Builder
	for _, r := range prefix {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
