package models

import (
	"time"
)

// UploadedDocument is a session's current document.
type UploadedDocument struct {
	Filename    string    `json:"filename" db:"filename"`
	StoragePath string    `json:"storage_path" db:"storage_path"`
	Size        int64     `json:"size" db:"size"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}

type UploadRequest struct {
	File     []byte
	Filename string
}

// ValidationRequest lives only for the duration of one process call.
type ValidationRequest struct {
	ExtractedText string
	RulesText     string
}

// ValidationReport is the model's answer, shown verbatim.
type ValidationReport struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// ValidationResult is what the process page renders.
type ValidationResult struct {
	Filename string            `json:"filename"`
	Pages    int               `json:"pages"`
	Rules    string            `json:"rules"`
	Report   *ValidationReport `json:"report"`
}

type ExtractionResult struct {
	Text  string
	Pages int
}
