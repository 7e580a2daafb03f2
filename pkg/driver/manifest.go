package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the project file looked up by FindManifest.
const ManifestName = "lfi3a.yml"

var ErrManifestNotFound = errors.New("manifest: lfi3a.yml not found")

// Manifest represents the parsed contents of lfi3a.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Main         string
	MaxCallDepth int
	Trace        bool
}

type manifestFile struct {
	Name    string       `yaml:"name"`
	Version string       `yaml:"version"`
	Main    string       `yaml:"main"`
	Trace   bool         `yaml:"trace"`
	Limits  limitsConfig `yaml:"limits"`
}

type limitsConfig struct {
	MaxCallDepth int `yaml:"max_call_depth"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses lfi3a.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := &Manifest{
		Path:         absPath,
		Name:         strings.TrimSpace(raw.Name),
		Version:      strings.TrimSpace(raw.Version),
		Main:         strings.TrimSpace(raw.Main),
		MaxCallDepth: raw.Limits.MaxCallDepth,
		Trace:        raw.Trace,
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Main != "" && !strings.HasSuffix(m.Main, SourceExtension) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("main %q must have %s extension", m.Main, SourceExtension))
	}
	if m.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("limits.max_call_depth must not be negative (got %d)", m.MaxCallDepth))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindManifest walks from dir towards the filesystem root and returns the
// first lfi3a.yml it meets.
func FindManifest(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ManifestName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrManifestNotFound
		}
		current = parent
	}
}
