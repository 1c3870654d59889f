package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/document-validator-api/internal/analyzer"
	"github.com/BerylCAtieno/document-validator-api/internal/extractor"
	"github.com/BerylCAtieno/document-validator-api/internal/models"
	"github.com/BerylCAtieno/document-validator-api/internal/repository"
	"github.com/BerylCAtieno/document-validator-api/internal/storage"
	"github.com/BerylCAtieno/document-validator-api/internal/utils"
)

const pdfContentType = "application/pdf"

type DocumentService interface {
	CurrentDocument(ctx context.Context, sessionID string) (*models.UploadedDocument, error)
	UploadDocument(ctx context.Context, sessionID string, req *models.UploadRequest) (*models.UploadedDocument, error)
	ProcessDocument(ctx context.Context, sessionID, rules string) (*models.ValidationResult, error)
	DeleteDocument(ctx context.Context, sessionID, filename string) error
	GetFile(ctx context.Context, filename string) ([]byte, error)
}

type documentService struct {
	repo      repository.Repository
	storage   storage.Storage
	extractor extractor.Extractor
	validator analyzer.Validator
	logger    *utils.Logger
}

func NewService(repo repository.Repository, store storage.Storage, ext extractor.Extractor, validator analyzer.Validator, logger *utils.Logger) DocumentService {
	return &documentService{
		repo:      repo,
		storage:   store,
		extractor: ext,
		validator: validator,
		logger:    logger,
	}
}

func (s *documentService) CurrentDocument(ctx context.Context, sessionID string) (*models.UploadedDocument, error) {
	doc, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		s.logger.Error("Failed to load current document", "error", err, "session", sessionID)
		return nil, utils.NewInternalError("Failed to load current document").WithCause(err)
	}
	return doc, nil
}

// ValidateFilename applies the upload rules: non-empty and a
// case-sensitive ".pdf" suffix. Content is not inspected.
func ValidateFilename(filename string) error {
	if filename == "" {
		return utils.NewBadRequestError("No file selected")
	}
	if !strings.HasSuffix(filename, ".pdf") {
		return utils.NewBadRequestError("Only PDF files are allowed")
	}
	return nil
}

func (s *documentService) UploadDocument(ctx context.Context, sessionID string, req *models.UploadRequest) (*models.UploadedDocument, error) {
	if err := ValidateFilename(req.Filename); err != nil {
		s.logger.Warn("Rejected upload", "filename", req.Filename, "session", sessionID)
		return nil, err
	}

	if err := s.storage.Upload(ctx, req.Filename, req.File, pdfContentType); err != nil {
		s.logger.Error("Failed to store upload", "error", err, "filename", req.Filename)
		return nil, utils.NewInternalError("Failed to store document").WithCause(err)
	}

	// The previous document of this session, if any, stays on disk.
	doc := &models.UploadedDocument{
		Filename:    req.Filename,
		StoragePath: s.storage.Location(req.Filename),
		Size:        int64(len(req.File)),
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.repo.Set(ctx, sessionID, doc); err != nil {
		s.logger.Error("Failed to record current document", "error", err, "session", sessionID)
		return nil, utils.NewInternalError("Failed to save document metadata").WithCause(err)
	}

	s.logger.Info("Document uploaded successfully",
		"filename", doc.Filename,
		"size", doc.Size,
		"session", sessionID)

	return doc, nil
}

func (s *documentService) ProcessDocument(ctx context.Context, sessionID, rules string) (*models.ValidationResult, error) {
	doc, err := s.CurrentDocument(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, utils.NewBadRequestError("No uploaded file to process.")
	}

	if strings.TrimSpace(rules) == "" {
		return nil, utils.NewBadRequestError("Validation rules are missing.")
	}

	// Read once: a concurrent delete between an existence check and the
	// read would otherwise surface as a storage error instead of a 404.
	data, err := s.storage.Download(ctx, doc.Filename)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, utils.NewNotFoundError("File not found.")
	}
	if err != nil {
		s.logger.Error("Failed to read stored document", "error", err, "filename", doc.Filename)
		return nil, utils.NewInternalError("Failed to read document").WithCause(err)
	}

	extraction, err := s.extractor.Extract(ctx, data)
	if err != nil {
		s.logger.Error("Failed to extract text", "error", err, "filename", doc.Filename)
		var extractErr *extractor.ExtractionError
		if errors.As(err, &extractErr) {
			return nil, utils.NewInternalError(extractErr.Error()).WithCause(err)
		}
		return nil, utils.NewInternalError(fmt.Sprintf("Failed to extract text: %v", err)).WithCause(err)
	}

	s.logger.Info("Starting document validation",
		"filename", doc.Filename,
		"pages", extraction.Pages,
		"text_length", len(extraction.Text),
		"rules_length", len(rules))

	report, err := s.validator.Evaluate(ctx, extraction.Text, rules)
	if err != nil {
		return nil, s.validationError(err, doc.Filename)
	}

	s.logger.Info("Document validated",
		"filename", doc.Filename,
		"model", report.Model,
		"report_length", len(report.Text))

	return &models.ValidationResult{
		Filename: doc.Filename,
		Pages:    extraction.Pages,
		Rules:    rules,
		Report:   report,
	}, nil
}

func (s *documentService) validationError(err error, filename string) error {
	var transportErr *analyzer.TransportError
	switch {
	case errors.Is(err, analyzer.ErrInputTooLarge):
		s.logger.Warn("Document too large to validate", "error", err, "filename", filename)
		return utils.NewRequestTooLargeError("Document text and rules are too large to validate").WithCause(err)
	case errors.As(err, &transportErr):
		s.logger.Error("OpenAI API call failed", "error", err, "filename", filename)
		return utils.NewBadGatewayError(transportErr.Error()).WithCause(err)
	default:
		s.logger.Error("Failed to validate document", "error", err, "filename", filename)
		return utils.NewInternalError("Failed to validate document").WithCause(err)
	}
}

// DeleteDocument removes filename from the store. The session's current
// document is cleared only when it has the same name; deleting some other
// stored file leaves the session's reference untouched.
func (s *documentService) DeleteDocument(ctx context.Context, sessionID, filename string) error {
	if filename == "" {
		return utils.NewBadRequestError("No filename provided")
	}

	if err := s.storage.Delete(ctx, filename); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.NewNotFoundError("File not found")
		}
		s.logger.Error("Failed to delete document", "error", err, "filename", filename)
		return utils.NewInternalError("Failed to delete document").WithCause(err)
	}

	doc, err := s.CurrentDocument(ctx, sessionID)
	if err != nil {
		return err
	}
	if doc != nil && doc.Filename == filename {
		if err := s.repo.Clear(ctx, sessionID); err != nil {
			s.logger.Error("Failed to clear current document", "error", err, "session", sessionID)
			return utils.NewInternalError("Failed to clear current document").WithCause(err)
		}
	}

	s.logger.Info("Document deleted", "filename", filename, "session", sessionID)
	return nil
}

// GetFile serves any stored file by name, current or not.
func (s *documentService) GetFile(ctx context.Context, filename string) ([]byte, error) {
	data, err := s.storage.Download(ctx, filename)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, utils.NewNotFoundError("File not found")
	}
	if err != nil {
		s.logger.Error("Failed to read stored file", "error", err, "filename", filename)
		return nil, utils.NewInternalError("Failed to read file").WithCause(err)
	}
	return data, nil
}
