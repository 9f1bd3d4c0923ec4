// ABOUTME: HTML template rendering for gin using embedded templates.
// ABOUTME: Each page template is parsed together with the shared base layout.

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"github.com/gin-gonic/gin/render"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

//go:embed templates
var templateFS embed.FS

const baseTemplate = "templates/base.html"

// TemplateRenderer implements gin's render.HTMLRender over html/template.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"url": Reverse,
}

// NewTemplateRenderer parses every page under templates/ with the base layout.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	pages := map[string]*template.Template{}
	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == baseTemplate || path.Ext(p) != ".html" {
			return nil
		}
		tmpl, err := template.New(path.Base(baseTemplate)).Funcs(templateFuncs).ParseFS(templateFS, baseTemplate, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		name := p[len("templates/"):]
		pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{pages: pages}, nil
}

func (r *TemplateRenderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("web: unknown template %q", name))
	}
	return render.HTML{
		Template: tmpl,
		Name:     path.Base(baseTemplate),
		Data:     data,
	}
}

// Markdown converts note text to sanitised HTML.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	logger *zap.Logger
}

func NewMarkdown(logger *zap.Logger) *Markdown {
	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
		logger: logger,
	}
}

func (m *Markdown) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(text), &buf); err != nil {
		// Fall back to escaped plain text.
		m.logger.Warn("markdown conversion failed", zap.Error(err))
		return template.HTML(template.HTMLEscapeString(text)) //nolint:gosec // escaped above
	}
	return template.HTML(m.policy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitised by bluemonday
}
