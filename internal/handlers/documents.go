package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/BerylCAtieno/document-validator-api/internal/middleware"
	"github.com/BerylCAtieno/document-validator-api/internal/models"
	"github.com/BerylCAtieno/document-validator-api/internal/services"
	"github.com/BerylCAtieno/document-validator-api/internal/utils"
	"github.com/gorilla/mux"
)

const (
	DefaultMaxFileSize = 10 << 20 // 10MB
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type indexPage struct {
	Document *models.UploadedDocument
}

type DocumentHandler struct {
	service     services.DocumentService
	logger      *utils.Logger
	maxFileSize int64
}

func NewDocumentHandler(service services.DocumentService, logger *utils.Logger, maxFileSize int64) *DocumentHandler {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &DocumentHandler{
		service:     service,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

func (h *DocumentHandler) Index(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.CurrentDocument(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.render(w, "index.html", indexPage{Document: doc})
}

func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	// Check Content-Length header first to reject oversized requests early
	if r.ContentLength > h.maxFileSize {
		h.respondError(w, utils.NewBadRequestError("File size exceeds upload limit"))
		return
	}

	// Limit the request body size to prevent memory exhaustion
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondError(w, utils.NewBadRequestError("File size exceeds upload limit"))
			return
		}
		h.respondError(w, utils.NewBadRequestError("No file part in the request"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("No file part in the request"))
		return
	}
	defer file.Close()

	h.logger.Info("File upload attempt",
		"filename", header.Filename,
		"reported_content_type", header.Header.Get("Content-Type"),
		"size", header.Size)

	// Reject before reading the body so a bad name costs nothing.
	if err := services.ValidateFilename(header.Filename); err != nil {
		h.respondError(w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file"))
		return
	}

	req := &models.UploadRequest{
		File:     data,
		Filename: header.Filename,
	}

	if _, err := h.service.UploadDocument(r.Context(), middleware.SessionID(r.Context()), req); err != nil {
		h.respondError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *DocumentHandler) ProcessDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	result, err := h.service.ProcessDocument(r.Context(), middleware.SessionID(r.Context()), r.PostFormValue("rules"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.render(w, "result.html", result)
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	if err := h.service.DeleteDocument(r.Context(), middleware.SessionID(r.Context()), r.PostFormValue("filename")); err != nil {
		h.respondError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *DocumentHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	data, err := h.service.GetFile(r.Context(), filename)
	if err != nil {
		h.respondError(w, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// render executes into a buffer first so a template error can still become
// a clean 500.
func (h *DocumentHandler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("Failed to render template", "template", name, "error", err)
		h.respondError(w, utils.NewInternalError("Failed to render page"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *DocumentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *DocumentHandler) respondError(w http.ResponseWriter, err error) {
	appErr := utils.AsAppError(err)

	h.logger.Error("Request error", "status", appErr.StatusCode, "error", appErr.Message, "cause", appErr.Err)

	h.respondJSON(w, appErr.StatusCode, map[string]string{"error": appErr.Message})
}
