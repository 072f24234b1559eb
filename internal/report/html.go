package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"

	apperrors "aidetect/internal/errors"
)

//go:embed templates
var templateFS embed.FS

var htmlTemplate = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	"pct":  func(p float64) string { return fmt.Sprintf("%.1f%%", p*100) },
	"band": bandClass,
}).ParseFS(templateFS, "templates/report.html.tmpl"))

// bandClass maps a probability to the color band used across report views.
func bandClass(probability float64) string {
	switch {
	case probability < 0.35:
		return "green"
	case probability < 0.55:
		return "yellow"
	case probability < 0.75:
		return "orange"
	default:
		return "red"
	}
}

// WriteHTML renders the document as a standalone HTML page to path.
func (d *Document) WriteHTML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewInternalError("failed to create report file", err)
	}
	defer f.Close()

	if err := htmlTemplate.Execute(f, d); err != nil {
		return apperrors.NewInternalError("failed to render report", err)
	}
	return nil
}
