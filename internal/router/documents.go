package router

import (
	"net/http"

	"github.com/BerylCAtieno/document-validator-api/internal/handlers"
	"github.com/BerylCAtieno/document-validator-api/internal/middleware"
	"github.com/BerylCAtieno/document-validator-api/internal/services"
	"github.com/BerylCAtieno/document-validator-api/internal/utils"

	"github.com/gorilla/mux"
)

type Options struct {
	MaxFileSize int64
	// SecureCookies marks the session cookie Secure (HTTPS deployments).
	SecureCookies bool
}

func NewRouter(docService services.DocumentService, logger *utils.Logger, opts Options) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Session(opts.SecureCookies))

	// Document handler
	docHandler := handlers.NewDocumentHandler(docService, logger, opts.MaxFileSize)

	// Health check
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", docHandler.Health).Methods(http.MethodGet)

	// Document pages
	r.HandleFunc("/", docHandler.Index).Methods(http.MethodGet)
	r.HandleFunc("/upload", docHandler.UploadDocument).Methods(http.MethodPost)
	r.HandleFunc("/process", docHandler.ProcessDocument).Methods(http.MethodPost)
	r.HandleFunc("/delete", docHandler.DeleteDocument).Methods(http.MethodPost)
	r.HandleFunc("/uploads/{filename}", docHandler.ServeFile).Methods(http.MethodGet)

	return r
}
