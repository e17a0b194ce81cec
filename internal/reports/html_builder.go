package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
	page           *template.Template
}

// NewHTMLBuilder creates an HTML builder and parses the page template
func NewHTMLBuilder() (*HTMLBuilder, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	loader := NewTemplateLoader()
	src, err := loader.LoadHTMLTemplate()
	if err != nil {
		return nil, err
	}
	page, err := template.New("report").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &HTMLBuilder{
		templateLoader: loader,
		goldmark:       md,
		page:           page,
	}, nil
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Title       string
	CSS         template.CSS
	Intro       template.HTML
	Station     string
	Pollutant   string
	Start       string
	PeriodFirst string
	PeriodLast  string
	Notice      string
	Warnings    []string
	Chart       template.HTML
	Version     string
	GeneratedAt string
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// Intro renders the intro markdown
func (h *HTMLBuilder) Intro() (template.HTML, error) {
	md, err := h.templateLoader.LoadIntroMarkdown()
	if err != nil {
		return "", err
	}
	out, err := h.ConvertMarkdownToHTML(md)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

// CSS returns the page styles
func (h *HTMLBuilder) CSS() (template.CSS, error) {
	css, err := h.templateLoader.LoadCSSStyles()
	if err != nil {
		return "", fmt.Errorf("failed to load CSS: %w", err)
	}
	return template.CSS(css), nil
}

// BuildCompleteHTML executes the page template
func (h *HTMLBuilder) BuildCompleteHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
