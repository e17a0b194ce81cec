package pollutants

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed pollutants.yaml
var defaultTable []byte

// Pollutant describes one monitored pollutant and its health reference
type Pollutant struct {
	Code      string  `yaml:"code" json:"code"`
	Name      string  `yaml:"name" json:"name"`
	Reference float64 `yaml:"reference" json:"reference"`
	Unit      string  `yaml:"unit" json:"unit"`
}

// Table maps pollutant codes to their reference data
type Table map[string]Pollutant

type tableFile struct {
	Pollutants []Pollutant `yaml:"pollutants"`
}

// Default returns the built-in WHO reference table
func Default() Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded pollutant table is invalid: %v", err))
	}
	return t
}

// Load reads a table from a YAML file, falling back to the built-in table when path is empty
func Load(path string) (Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pollutant table %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML pollutant table
func Parse(data []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse pollutant table: %w", err)
	}
	if len(f.Pollutants) == 0 {
		return nil, fmt.Errorf("pollutant table is empty")
	}

	t := make(Table, len(f.Pollutants))
	for _, p := range f.Pollutants {
		p.Code = strings.TrimSpace(p.Code)
		if p.Code == "" {
			return nil, fmt.Errorf("pollutant without code")
		}
		if p.Reference <= 0 {
			return nil, fmt.Errorf("pollutant %s: reference concentration must be positive, got %v", p.Code, p.Reference)
		}
		if _, dup := t[p.Code]; dup {
			return nil, fmt.Errorf("pollutant %s listed twice", p.Code)
		}
		if p.Name == "" {
			p.Name = p.Code
		}
		t[p.Code] = p
	}
	return t, nil
}

// Lookup returns the pollutant for a code
func (t Table) Lookup(code string) (Pollutant, bool) {
	p, ok := t[strings.TrimSpace(code)]
	return p, ok
}

// Codes returns the known pollutant codes in a stable order
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t))
	for c := range t {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// FetchReferenceTable lets a static table serve as the reference source of an analysis
func (t Table) FetchReferenceTable(ctx context.Context) (Table, error) {
	return t, nil
}
