package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrDocumentRender indicates the page template failed to execute.
var ErrDocumentRender = errors.New("document template rendering failed")

// DefaultLang is the document language used when none is configured.
const DefaultLang = "en"

// DocumentData holds the values substituted into the page template.
type DocumentData struct {
	Title string
	Lang  string
	CSS   string
	Body  string
}

// templateData is the typed view handed to html/template. CSS and Body are
// trusted: CSS comes from the asset loader and Body from the block renderer.
type templateData struct {
	Title string
	Lang  string
	CSS   template.CSS
	Body  template.HTML
}

// DocumentRenderer defines the contract for wrapping a body in a full page.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, data DocumentData) (string, error)
}

// DocumentBuilder renders the page template.
type DocumentBuilder struct {
	tmpl *template.Template
}

// NewDocumentBuilder parses the page template.
// Returns error if the template cannot be parsed.
func NewDocumentBuilder(tmplContent string) (*DocumentBuilder, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &DocumentBuilder{tmpl: tmpl}, nil
}

// RenderDocument executes the template. An empty Lang defaults to "en".
func (b *DocumentBuilder) RenderDocument(ctx context.Context, data DocumentData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lang := data.Lang
	if lang == "" {
		lang = DefaultLang
	}

	var buf bytes.Buffer
	err := b.tmpl.Execute(&buf, templateData{
		Title: data.Title,
		Lang:  lang,
		CSS:   template.CSS(sanitizeCSS(data.CSS)), // #nosec G203 -- stylesheet from asset loader
		Body:  template.HTML(data.Body),          // #nosec G203 -- body from block renderer
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Compile-time interface check.
var _ DocumentRenderer = (*DocumentBuilder)(nil)
