package mdreport

import (
	"context"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdreport/internal/assets"
	"github.com/alnah/go-mdreport/internal/fileutil"
	"github.com/alnah/go-mdreport/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.BodyRenderer     = (*pipeline.BlockRenderer)(nil)
	_ pipeline.DocumentRenderer = (*pipeline.DocumentBuilder)(nil)
	_ pdfConverter              = (*rodConverter)(nil)
	_ pdfRenderer               = (*rodRenderer)(nil)
)

// Converter orchestrates the markdown-to-report pipeline.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter is not safe for concurrent use while a PDF export is running.
type Converter struct {
	cfg          converterConfig
	log          logrus.FieldLogger
	assetLoader  assets.AssetLoader
	bodyRenderer pipeline.BodyRenderer
	docRenderer  pipeline.DocumentRenderer
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with the embedded stylesheet and page
// template. Use options to customize behavior (e.g., WithStyle, WithAssetPath,
// WithTimeout).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout},
		log:          discardLogger(),
		bodyRenderer: pipeline.NewBlockRenderer(),
	}

	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.assetLoader = resolver
	c.log.WithField("custom", resolver.HasCustomLoader()).Debug("asset loader ready")

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.docRenderer == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading page template: %w", err)
		}
		builder, err := pipeline.NewDocumentBuilder(tmpl)
		if err != nil {
			return nil, fmt.Errorf("initializing document builder: %w", err)
		}
		c.docRenderer = builder
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.cfg.browserBin, c.cfg.noSandbox)
	}

	return c, nil
}

// Convert renders input into an HTML document and, when input.PDF is set,
// a PDF. Dropped content is reported in ConvertResult.Diagnostics and never
// fails the conversion.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	start := time.Now()
	lines := pipeline.SplitLines(input.Markdown)

	body, err := c.bodyRenderer.RenderBody(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("rendering body: %w", err)
	}
	c.log.WithFields(logrus.Fields{
		"lines":   len(lines),
		"blocks":  len(body.Kinds),
		"elapsed": time.Since(start),
	}).Debug("rendered body")

	diags := toDiagnostics(body.Diagnostics)
	for _, d := range diags {
		c.log.WithFields(logrus.Fields{"line": d.Line, "kind": d.Kind}).Warn(d.Message)
	}

	title := c.resolveTitle(input, lines)

	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}

	docStart := time.Now()
	document, err := c.docRenderer.RenderDocument(ctx, pipeline.DocumentData{
		Title: title,
		Lang:  c.cfg.lang,
		CSS:   cssContent,
		Body:  body.HTML,
	})
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}
	c.log.WithField("elapsed", time.Since(docStart)).Debug("built document")

	res := &ConvertResult{
		HTML:        []byte(document),
		Title:       title,
		Diagnostics: diags,
	}

	if !input.PDF {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	printable, err := pipeline.RewriteImageSources(document, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting image sources: %w", err)
	}

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}

	pdfCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	pdfStart := time.Now()
	pdfBytes, err := c.pdfConverter.ToPDF(pdfCtx, printable, page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	c.log.WithFields(logrus.Fields{
		"bytes":   len(pdfBytes),
		"elapsed": time.Since(pdfStart),
	}).Debug("rendered PDF")

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveTitle picks the page title: input, then converter option, then
// the first level-1 heading, then DefaultTitle. Heading text is unescaped
// so the template escapes it exactly once.
func (c *Converter) resolveTitle(input Input, lines []string) string {
	if input.Title != "" {
		return input.Title
	}
	if c.cfg.title != "" {
		return c.cfg.title
	}
	if heading := pipeline.ExtractTitle(lines); heading != "" {
		return html.UnescapeString(heading)
	}
	return DefaultTitle
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. Called during NewConverter after the asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	if assets.IsAssetName(input) {
		css, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		c.cfg.resolvedStyle = css
		return nil
	}

	// CSS content? (contains {)
	if strings.Contains(input, "{") {
		c.cfg.resolvedStyle = input
		return nil
	}

	return fmt.Errorf("loading style: %w: %q", assets.ErrInvalidAssetName, input)
}

// validateInput checks per-conversion options.
// An empty Markdown is valid and renders an empty page body.
func (c *Converter) validateInput(input Input) error {
	return input.Page.Validate()
}
