package httpx

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/service"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page kinds select the content template.
const (
	PageView    = "view"
	PageLogin   = "login"
	PageBlocked = "blocked"
	PageError   = "error"
)

// PageData is what every template receives.
type PageData struct {
	Kind    string
	Title   string
	View    service.View
	Data    map[string]any
	Session domainauth.Session
	Views   []service.View
	Notice  string
	Error   string
}

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer(logger *slog.Logger) (*TemplateRenderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	t, err := template.New("root").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		logger.Error("template parsing failed",
			slog.Any("error", err),
			slog.String("phase", "initialization"),
		)
		return nil, err
	}
	return &TemplateRenderer{t: t, logger: logger}, nil
}

// Render writes the full page, or only the main fragment for htmx requests.
func (r *TemplateRenderer) Render(w http.ResponseWriter, req *http.Request, status int, data PageData) {
	name := "layout"
	if WantsPartial(req) {
		name = "content"
	}

	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("failed to write rendered template",
			slog.String("template", name),
			slog.Any("error", err),
		)
	}
}
