package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/ats-screener/internal/apperrors"
)

// StorageService spools uploaded résumés to disk while an asynchronous
// screening waits for a worker. Files are deleted once the screening ran.
type StorageService interface {
	SaveFile(file *multipart.FileHeader) (string, error)
	Open(filename string) (*os.File, int64, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0o700); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile copies the upload under a unique name and returns that name.
func (s *storageService) SaveFile(file *multipart.FileHeader) (string, error) {
	if err := ValidatePDFName(file.Filename); err != nil {
		return "", err
	}

	uniqueFilename := fmt.Sprintf("resume_%s.pdf", uuid.New().String())
	filePath := s.GetFilePath(uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, nil
}

func (s *storageService) Open(filename string) (*os.File, int64, error) {
	f, err := os.Open(s.GetFilePath(filename))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open spooled file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat spooled file: %w", err)
	}

	return f, info.Size(), nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filepath.Base(filename))
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ValidatePDFName mirrors the file picker's PDF-only restriction.
func ValidatePDFName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".pdf" {
		return apperrors.InvalidInput(fmt.Sprintf("invalid file extension %q, only PDF resumes are accepted", ext))
	}
	return nil
}
