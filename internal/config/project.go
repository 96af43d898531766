package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Colour modes accepted by the `color` key.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultContextLines is the number of source lines printed around a diagnostic.
const DefaultContextLines = 2

// Project is the content of a jsc.yaml file.
type Project struct {
	// Entry is the entry module, relative to the project file.
	Entry string `yaml:"entry"`

	// Color selects coloured diagnostics: auto, always or never.
	Color string `yaml:"color,omitempty"`

	// ContextLines is the number of source lines shown before and after
	// the line a diagnostic points at.
	ContextLines *int `yaml:"context_lines,omitempty"`

	// MaxDiagnostics caps how many diagnostics are printed. Zero prints all.
	MaxDiagnostics int `yaml:"max_diagnostics,omitempty"`

	// Verbose enables stage logging on stderr.
	Verbose bool `yaml:"verbose,omitempty"`

	// Dir is the directory holding the project file. Not read from YAML.
	Dir string `yaml:"-"`
}

// DefaultProject is used when no jsc.yaml is found.
func DefaultProject() *Project {
	p := &Project{}
	p.setDefaults()
	return p
}

// LoadProject reads and parses a jsc.yaml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project %s: %w", path, err)
	}
	p, err := ParseProject(data, path)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		p.Dir = abs
	}
	return p, nil
}

// ParseProject parses jsc.yaml content. Unknown keys are rejected.
// The path argument is used only for error messages.
func ParseProject(data []byte, path string) (*Project, error) {
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.setDefaults()
	return &p, nil
}

// FindProject searches for jsc.yaml starting from dir and walking up to
// parent directories. It returns "" and a nil error when there is none.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

func (p *Project) validate(path string) error {
	switch p.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never (got %q)", path, p.Color)
	}
	if p.ContextLines != nil && *p.ContextLines < 0 {
		return fmt.Errorf("%s: context_lines must not be negative", path)
	}
	if p.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: max_diagnostics must not be negative", path)
	}
	return nil
}

func (p *Project) setDefaults() {
	if p.Color == "" {
		p.Color = ColorAuto
	}
	if p.ContextLines == nil {
		n := DefaultContextLines
		p.ContextLines = &n
	}
}

// Context returns the configured number of context lines.
func (p *Project) Context() int {
	if p.ContextLines == nil {
		return DefaultContextLines
	}
	return *p.ContextLines
}

// EntryPath returns the entry module as an absolute path, or "".
func (p *Project) EntryPath() string {
	if p.Entry == "" {
		return ""
	}
	if filepath.IsAbs(p.Entry) || p.Dir == "" {
		return filepath.Clean(p.Entry)
	}
	return filepath.Join(p.Dir, p.Entry)
}
