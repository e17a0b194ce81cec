package reports

import (
	"bytes"
	"encoding/json"
	"fmt"

	"dailyair/internal/charts"
	"dailyair/internal/logger"
)

// Names of the files published for an analysis
const (
	HTMLFileName  = "index.html"
	PNGFileName   = "chart.png"
	JSONFileName  = "chart.json"
	ChartFileName = "chart.html"
)

// FileGenerator handles generation of all report files
type FileGenerator struct {
	generator *Generator
}

// GeneratedFiles contains all files generated for a report
type GeneratedFiles struct {
	FolderPath string
	Files      map[string][]byte
}

// NewFileGenerator creates a new file generator
func NewFileGenerator(generator *Generator) *FileGenerator {
	return &FileGenerator{generator: generator}
}

// GenerateAllFiles renders the report page and, when the page carries a
// chart, the standalone chart page, the PNG and the chart JSON
func (fg *FileGenerator) GenerateAllFiles(p Page) (*GeneratedFiles, error) {
	files := &GeneratedFiles{
		FolderPath: ReportFolderPath(p.Station, p.Pollutant, p.Cutoff),
		Files:      make(map[string][]byte),
	}

	html, err := fg.generator.GenerateHTML(p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}
	files.Files[HTMLFileName] = []byte(html)

	if p.Result == nil || p.Notice != "" {
		return files, nil
	}
	spec := p.Result.Chart

	var png bytes.Buffer
	if err := charts.RenderPNG(spec, &png); err != nil {
		return nil, fmt.Errorf("failed to render PNG chart: %w", err)
	}
	files.Files[PNGFileName] = png.Bytes()

	var page bytes.Buffer
	if err := charts.RenderPage(spec, &page); err != nil {
		return nil, fmt.Errorf("failed to render chart page: %w", err)
	}
	files.Files[ChartFileName] = page.Bytes()

	data, err := json.MarshalIndent(p.Result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	files.Files[JSONFileName] = data

	logger.Debug("Generated report files", logger.Fields{"folder": files.FolderPath, "files": len(files.Files)})
	return files, nil
}
