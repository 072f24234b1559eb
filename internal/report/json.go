package report

import (
	"encoding/json"
	"os"
	"time"

	apperrors "aidetect/internal/errors"
	"aidetect/internal/scanner"
)

// Document is the serialized form of a scan, shared by the JSON and HTML
// renderers and by the HTTP API.
type Document struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Tool        string         `json:"tool"`
	Scan        scanner.Result `json:"scan"`
}

// NewDocument wraps a scan result for rendering.
func NewDocument(result *scanner.Result) *Document {
	return &Document{
		GeneratedAt: time.Now().UTC(),
		Tool:        "aidetect",
		Scan:        *result,
	}
}

// WriteJSON renders the document as indented JSON to path.
func (d *Document) WriteJSON(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("failed to encode report", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.NewInternalError("failed to write report", err)
	}
	return nil
}
