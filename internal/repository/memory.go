package repository

import (
	"context"
	"sync"

	"github.com/BerylCAtieno/document-validator-api/internal/models"
)

type memoryRepository struct {
	mu   sync.RWMutex
	docs map[string]models.UploadedDocument
}

func NewMemoryRepository() Repository {
	return &memoryRepository{docs: make(map[string]models.UploadedDocument)}
}

func (r *memoryRepository) Get(_ context.Context, sessionID string) (*models.UploadedDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[sessionID]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *memoryRepository) Set(_ context.Context, sessionID string, doc *models.UploadedDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[sessionID] = *doc
	return nil
}

func (r *memoryRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.docs, sessionID)
	return nil
}
