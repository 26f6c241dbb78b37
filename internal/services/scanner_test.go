package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soarespng/cv-scanner/internal/models"
	"github.com/soarespng/cv-scanner/internal/repositories"
	"github.com/soarespng/cv-scanner/internal/testutil"
)

// ==========================
// Mocks
// ==========================

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) SaveFile(ctx context.Context, filename string, data []byte, contentType string) (*StoredFile, error) {
	args := m.Called(ctx, filename, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoredFile), args.Error(1)
}

func (m *MockStorageService) ResolveFile(ctx context.Context, locator string) (*ResolvedFile, error) {
	args := m.Called(ctx, locator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ResolvedFile), args.Error(1)
}

func (m *MockStorageService) DeleteFile(ctx context.Context, locator string) error {
	return m.Called(ctx, locator).Error(0)
}

func (m *MockStorageService) EnsureReady(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(document *models.Document) error {
	return m.Called(document).Error(0)
}

func (m *MockDocumentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

// ==========================
// Helpers
// ==========================

func resumePDF() []byte {
	return testutil.BuildPDF(
		"Telefone: (11) 98765-4321",
		"email: ana@example.com",
		"Skills: Go, Docker, PostgreSQL",
		"Nome: Ana Maria Silva",
	)
}

func newTestScanner(storage StorageService, repo repositories.DocumentRepository) ScannerService {
	log := zap.NewNop()
	return NewScannerService(storage, NewPDFParserService(log), NewProfileParser(), NewKeywordScorer(), repo, log)
}

// ==========================
// Tests
// ==========================

func TestScanner_Scan_Success(t *testing.T) {
	storage := NewStorageService(filepath.Join(t.TempDir(), "uploads"), 0)
	require.NoError(t, storage.EnsureReady(context.Background()))
	repo := repositories.NewMemoryDocumentRepository()

	scanner := newTestScanner(storage, repo)
	records := scanner.Scan(context.Background(), []Upload{
		{Filename: "Ana Silva.pdf", ContentType: "application/pdf", Data: resumePDF()},
	}, []string{"Go", "docker", "Kubernetes"})

	require.Len(t, records, 1)
	r := records[0]

	assert.Equal(t, models.StatusCompleted, r.Status)
	assert.Nil(t, r.ErrorMessage)
	assert.Equal(t, "Ana", r.FirstName)
	assert.Equal(t, "Maria", r.MiddleName)
	assert.Equal(t, "Silva", r.LastName)
	assert.Equal(t, "(11) 98765-4321", r.Phone)
	assert.Equal(t, "ana@example.com", r.Email)
	assert.Equal(t, []string{"go", "docker"}, r.FoundKeywords)
	assert.Equal(t, []string{"kubernetes"}, r.NotFoundKeywords)
	assert.Equal(t, "66.67%", r.FormattedCompatibility())

	assert.Equal(t, "Ana Silva.pdf", r.OriginalFilename)
	assert.True(t, strings.HasSuffix(r.Filename, "_Ana_Silva.pdf"), r.Filename)
	assert.Equal(t, ViewPathPrefix+r.Filename, r.FileURL)

	id, err := uuid.Parse(r.DocumentID)
	require.NoError(t, err)
	doc, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, r.Filename, doc.Filename)
	assert.Equal(t, "local", doc.StorageBackend)

	resolved, err := storage.ResolveFile(context.Background(), r.Filename)
	require.NoError(t, err)
	assert.Equal(t, resumePDF(), resolved.Data)
}

func TestScanner_Scan_FailedFileDoesNotStopBatch(t *testing.T) {
	storage := new(MockStorageService)
	storage.On("SaveFile", mock.Anything, "a.pdf", mock.Anything, mock.Anything).
		Return(&StoredFile{Locator: "1_a.pdf", URL: "/view/1_a.pdf", Backend: "local"}, nil)
	storage.On("SaveFile", mock.Anything, "b.pdf", mock.Anything, mock.Anything).
		Return(nil, wrapKind(ErrStorage, errors.New("disk full")))
	storage.On("SaveFile", mock.Anything, "c.pdf", mock.Anything, mock.Anything).
		Return(&StoredFile{Locator: "3_c.pdf", URL: "/view/3_c.pdf", Backend: "local"}, nil)

	scanner := newTestScanner(storage, repositories.NewMemoryDocumentRepository())
	uploads := []Upload{
		{Filename: "a.pdf", Data: resumePDF()},
		{Filename: "b.pdf", Data: resumePDF()},
		{Filename: "c.pdf", Data: resumePDF()},
	}

	records := scanner.Scan(context.Background(), uploads, []string{"go"})

	require.Len(t, records, 3)
	assert.Equal(t, models.StatusCompleted, records[0].Status)
	assert.Equal(t, "1_a.pdf", records[0].Filename)
	assert.Empty(t, records[0].ErrorCode)

	assert.Equal(t, models.StatusFailed, records[1].Status)
	require.NotNil(t, records[1].ErrorMessage)
	assert.Equal(t, "disk full", *records[1].ErrorMessage)
	assert.Equal(t, models.ErrorCodeStorage, records[1].ErrorCode)
	assert.Equal(t, "b.pdf", records[1].OriginalFilename)
	assert.Equal(t, models.NewProfileRecord(), records[1].ProfileRecord)
	assert.Empty(t, records[1].DocumentID)
	assert.Empty(t, records[1].FileURL)

	assert.Equal(t, models.StatusCompleted, records[2].Status)
	assert.Equal(t, "3_c.pdf", records[2].Filename)

	assert.Equal(t, models.ScanSummary{Total: 3, Completed: 2, Failed: 1}, models.Summarize(records))
	storage.AssertExpectations(t)
}

func TestScanner_Scan_UntaggedStorageErrorIsStorageFailure(t *testing.T) {
	storage := new(MockStorageService)
	storage.On("SaveFile", mock.Anything, "cv.pdf", mock.Anything, mock.Anything).
		Return(nil, errors.New("bucket unreachable"))

	records := newTestScanner(storage, nil).Scan(context.Background(), []Upload{{Filename: "cv.pdf", Data: resumePDF()}}, nil)

	require.Len(t, records, 1)
	assert.Equal(t, models.ErrorCodeStorage, records[0].ErrorCode)
	require.NotNil(t, records[0].ErrorMessage)
	assert.Equal(t, "bucket unreachable", *records[0].ErrorMessage)
}

func TestScanner_Scan_ExtractionFailure(t *testing.T) {
	storage := NewStorageService(filepath.Join(t.TempDir(), "uploads"), 0)
	require.NoError(t, storage.EnsureReady(context.Background()))

	scanner := newTestScanner(storage, repositories.NewMemoryDocumentRepository())
	records := scanner.Scan(context.Background(), []Upload{
		{Filename: "broken.pdf", Data: []byte("%PDF-1.4\n1 0 obj")},
		{Filename: "good.pdf", Data: resumePDF()},
	}, []string{"go"})

	require.Len(t, records, 2)
	assert.Equal(t, models.StatusFailed, records[0].Status)
	assert.Equal(t, models.ErrorCodeExtraction, records[0].ErrorCode)
	require.NotNil(t, records[0].ErrorMessage)
	assert.NotEmpty(t, records[0].DocumentID, "file is stored and registered before extraction")
	assert.NotEmpty(t, records[0].FileURL)

	assert.Equal(t, models.StatusCompleted, records[1].Status)
	assert.Equal(t, 100.0, records[1].Compatibility)
}

func TestScanner_Scan_RejectsNonPDFBeforeExtraction(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir, 0)
	require.NoError(t, storage.EnsureReady(context.Background()))
	repo := new(MockDocumentRepository)

	scanner := newTestScanner(storage, repo)
	records := scanner.Scan(context.Background(), []Upload{
		{Filename: "notes.txt", Data: []byte("Nome: Ana Silva")},
	}, []string{"ana"})

	require.Len(t, records, 1)
	assert.Equal(t, models.StatusFailed, records[0].Status)
	assert.Equal(t, models.ErrorCodeValidation, records[0].ErrorCode)
	assert.Equal(t, models.NotAvailable, records[0].FirstName)
	assert.Empty(t, records[0].FoundKeywords)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestScanner_Scan_RegistryFailureIsNotFatal(t *testing.T) {
	storage := NewStorageService(filepath.Join(t.TempDir(), "uploads"), 0)
	require.NoError(t, storage.EnsureReady(context.Background()))

	repo := new(MockDocumentRepository)
	repo.On("Create", mock.AnythingOfType("*models.Document")).Return(errors.New("connection refused"))

	records := newTestScanner(storage, repo).Scan(context.Background(), []Upload{
		{Filename: "cv.pdf", Data: resumePDF()},
	}, nil)

	require.Len(t, records, 1)
	assert.Equal(t, models.StatusCompleted, records[0].Status)
	assert.Empty(t, records[0].DocumentID)
	assert.Equal(t, 0.0, records[0].Compatibility)
	repo.AssertExpectations(t)
}

func TestScanner_Scan_CanceledContext(t *testing.T) {
	storage := new(MockStorageService)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := newTestScanner(storage, nil).Scan(ctx, []Upload{{Filename: "cv.pdf", Data: resumePDF()}}, nil)

	require.Len(t, records, 1)
	assert.Equal(t, models.StatusFailed, records[0].Status)
	assert.Equal(t, models.ErrorCodeCanceled, records[0].ErrorCode)
	storage.AssertNotCalled(t, "SaveFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScanner_Scan_EmptyBatch(t *testing.T) {
	records := newTestScanner(new(MockStorageService), nil).Scan(context.Background(), nil, []string{"go"})
	assert.Empty(t, records)
}
