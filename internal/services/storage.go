package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ViewPathPrefix is the route that serves locally stored files.
const ViewPathPrefix = "/view/"

// StoredFile is what a backend hands back after a successful upload.
type StoredFile struct {
	Locator string
	URL     string
	Backend string
}

// ResolvedFile is either the file content or a URL the client should be
// redirected to.
type ResolvedFile struct {
	Locator     string
	ContentType string
	Data        []byte
	RedirectURL string
}

type StorageService interface {
	SaveFile(ctx context.Context, filename string, data []byte, contentType string) (*StoredFile, error)
	ResolveFile(ctx context.Context, locator string) (*ResolvedFile, error)
	DeleteFile(ctx context.Context, locator string) error
	EnsureReady(ctx context.Context) error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureReady(ctx context.Context) error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return wrapKind(ErrStorage, fmt.Errorf("failed to create upload directory: %w", err))
	}

	return nil
}

func (s *storageService) SaveFile(ctx context.Context, filename string, data []byte, contentType string) (*StoredFile, error) {
	if err := ValidatePDFUpload(filename, data, s.maxFileSize); err != nil {
		return nil, err
	}

	locator := newLocator(filename)
	if err := os.WriteFile(filepath.Join(s.uploadPath, locator), data, 0644); err != nil {
		return nil, wrapKind(ErrStorage, fmt.Errorf("failed to save file: %w", err))
	}

	return &StoredFile{
		Locator: locator,
		URL:     ViewPathPrefix + url.PathEscape(locator),
		Backend: "local",
	}, nil
}

func (s *storageService) ResolveFile(ctx context.Context, locator string) (*ResolvedFile, error) {
	if !isSafeLocator(locator) {
		return nil, wrapKind(ErrNotFound, fmt.Errorf("file %s not found", locator))
	}

	data, err := os.ReadFile(filepath.Join(s.uploadPath, locator))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("file %s not found", locator))
		}
		return nil, wrapKind(ErrStorage, fmt.Errorf("failed to read file: %w", err))
	}

	return &ResolvedFile{
		Locator:     locator,
		ContentType: pdfMIME,
		Data:        data,
	}, nil
}

func (s *storageService) DeleteFile(ctx context.Context, locator string) error {
	if !isSafeLocator(locator) {
		return wrapKind(ErrNotFound, fmt.Errorf("file %s not found", locator))
	}

	if err := os.Remove(filepath.Join(s.uploadPath, locator)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return wrapKind(ErrNotFound, fmt.Errorf("file %s not found", locator))
		}
		return wrapKind(ErrStorage, fmt.Errorf("failed to delete file: %w", err))
	}
	return nil
}

// newLocator prefixes the sanitized client name with a UUID so two uploads
// with the same name never overwrite each other.
func newLocator(filename string) string {
	name := SecureFilename(filename)
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name = "document.pdf"
	}
	return fmt.Sprintf("%s_%s", uuid.New().String(), name)
}

func isSafeLocator(locator string) bool {
	return locator != "" && SecureFilename(locator) == locator
}
