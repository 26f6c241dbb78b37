package repositories

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soarespng/cv-scanner/internal/models"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uuid.UUID) (*models.Document, error)
	Delete(id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := d.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}

		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// Delete implements DocumentRepository.
func (d *documentRepository) Delete(id uuid.UUID) error {
	result := d.db.Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// memoryDocumentRepository keeps the registry in process when no database
// is configured. Entries are lost on restart.
type memoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]models.Document
}

func NewMemoryDocumentRepository() DocumentRepository {
	return &memoryDocumentRepository{docs: make(map[uuid.UUID]models.Document)}
}

func (m *memoryDocumentRepository) Create(document *models.Document) error {
	if document.ID == uuid.Nil {
		return errors.New("failed to create document: missing id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.docs[document.ID]; exists {
		return fmt.Errorf("failed to create document: duplicate id %s", document.ID)
	}
	m.docs[document.ID] = *document
	return nil
}

func (m *memoryDocumentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return &doc, nil
}

func (m *memoryDocumentRepository) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return ErrDocumentNotFound
	}
	delete(m.docs, id)
	return nil
}
