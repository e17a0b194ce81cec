package reports

import (
	"embed"
	"fmt"
)

//go:embed templates/report.html templates/styles.css templates/intro.md
var templateFS embed.FS

// TemplateLoader handles loading the page template, its styles and the intro text
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadHTMLTemplate loads the page template
func (t *TemplateLoader) LoadHTMLTemplate() (string, error) {
	return t.load("templates/report.html")
}

// LoadCSSStyles loads the page styles
func (t *TemplateLoader) LoadCSSStyles() (string, error) {
	return t.load("templates/styles.css")
}

// LoadIntroMarkdown loads the markdown shown above the selection form
func (t *TemplateLoader) LoadIntroMarkdown() (string, error) {
	return t.load("templates/intro.md")
}

func (t *TemplateLoader) load(name string) (string, error) {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(content), nil
}
