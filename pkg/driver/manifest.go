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

// ManifestFileName is the project manifest looked up by FindManifest.
const ManifestFileName = "matlang.yml"

// ErrManifestNotFound is returned when no manifest exists between a start
// directory and the filesystem root.
var ErrManifestNotFound = errors.New(ManifestFileName + " not found")

// Manifest represents the parsed contents of matlang.yml.
type Manifest struct {
	Path      string
	Name      string
	Main      string
	PrintTree bool
	LogLevel  string
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

var logLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// LoadManifest parses matlang.yml from disk, returning a validated manifest.
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

	manifest := raw.toManifest(absPath)
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
	if m.Main == "" {
		errs.Issues = append(errs.Issues, "main must be provided")
	} else if filepath.IsAbs(m.Main) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("main %q must be relative to the manifest", m.Main))
	}
	if !logLevels[m.LogLevel] {
		errs.Issues = append(errs.Issues, fmt.Sprintf("unsupported log_level %q", m.LogLevel))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// MainPath resolves the entry program relative to the manifest directory.
func (m *Manifest) MainPath() string {
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(m.Main))
}

// FindManifest walks from start up to the filesystem root and returns the
// first matlang.yml found.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestFileName, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}

type manifestFile struct {
	Name      string `yaml:"name"`
	Main      string `yaml:"main"`
	PrintTree bool   `yaml:"print_tree"`
	LogLevel  string `yaml:"log_level"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	return &Manifest{
		Path:      path,
		Name:      strings.TrimSpace(mf.Name),
		Main:      strings.TrimSpace(mf.Main),
		PrintTree: mf.PrintTree,
		LogLevel:  strings.ToLower(strings.TrimSpace(mf.LogLevel)),
	}
}
