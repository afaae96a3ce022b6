// Package driver loads script.yml project manifests and YAML script
// fixtures for the arcscript front end.
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

// ManifestName is the project file arcscript looks for.
const ManifestName = "script.yml"

// Manifest represents the parsed contents of script.yml.
type Manifest struct {
	Path        string
	Dir         string
	Name        string
	MaxSteps    int
	Targets     map[string]*Target
	TargetOrder []string
}

// Target names a runnable script within the project.
type Target struct {
	Name string
	Main string
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

var ErrNoTargets = errors.New("manifest: no targets defined")

// LoadManifest parses script.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", abs, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", abs)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", abs, err)
	}

	manifest := raw.toManifest(abs)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from dir toward the filesystem root looking for script.yml.
func FindManifest(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	current := start
	for {
		candidate := filepath.Join(current, ManifestName)
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("manifest: no %s found in %s or any parent directory", ManifestName, start)
		}
		current = parent
	}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.MaxSteps < 0 {
		errs.Issues = append(errs.Issues, "max-steps must not be negative")
	}
	for _, name := range m.TargetOrder {
		if m.Targets[name].Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires an entrypoint path", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*Target, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTargets
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by name, falling back to a case-insensitive match.
func (m *Manifest) FindTarget(name string) (*Target, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if target, ok := m.Targets[name]; ok {
		return target, true
	}
	for _, key := range m.TargetOrder {
		if strings.EqualFold(key, name) {
			return m.Targets[key], true
		}
	}
	return nil, false
}

// EntryPath resolves a target's main script against the manifest directory.
func (m *Manifest) EntryPath(target *Target) string {
	if target == nil {
		return ""
	}
	if filepath.IsAbs(target.Main) {
		return target.Main
	}
	return filepath.Join(m.Dir, filepath.FromSlash(target.Main))
}

type manifestFile struct {
	Name     string    `yaml:"name"`
	MaxSteps int       `yaml:"max-steps"`
	Targets  targetMap `yaml:"targets"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	main string
}

// UnmarshalYAML walks the mapping by hand to preserve target order.
func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		tm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		main, err := decodeTargetMain(key, valueNode)
		if err != nil {
			return err
		}
		items = append(items, targetMapEntry{name: key, main: main})
	}
	tm.items = items
	return nil
}

// decodeTargetMain accepts the shorthand `app: src/main.arc` and the
// expanded `app: {main: src/main.arc}` forms.
func decodeTargetMain(key string, value *yaml.Node) (string, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return "", nil
		}
		var main string
		if err := value.Decode(&main); err != nil {
			return "", fmt.Errorf("manifest: target %q: %w", key, err)
		}
		return strings.TrimSpace(main), nil
	case yaml.MappingNode:
		for i := 0; i < len(value.Content); i += 2 {
			var field string
			if err := value.Content[i].Decode(&field); err != nil {
				return "", fmt.Errorf("manifest: target %q: %w", key, err)
			}
			if field != "main" {
				return "", fmt.Errorf("manifest: target %q: unknown field %q", key, field)
			}
		}
		var raw struct {
			Main string `yaml:"main"`
		}
		if err := value.Decode(&raw); err != nil {
			return "", fmt.Errorf("manifest: target %q: %w", key, err)
		}
		return strings.TrimSpace(raw.Main), nil
	case yaml.AliasNode:
		return decodeTargetMain(key, value.Alias)
	default:
		return "", fmt.Errorf("manifest: target %q: expected string or mapping, found %s", key, value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	capacity := len(mf.Targets.items)
	result := &Manifest{
		Path:        path,
		Dir:         filepath.Dir(path),
		Name:        strings.TrimSpace(mf.Name),
		MaxSteps:    mf.MaxSteps,
		Targets:     make(map[string]*Target, capacity),
		TargetOrder: make([]string, 0, capacity),
	}
	for _, item := range mf.Targets.items {
		if _, exists := result.Targets[item.name]; exists {
			continue
		}
		result.Targets[item.name] = &Target{Name: item.name, Main: item.main}
		result.TargetOrder = append(result.TargetOrder, item.name)
	}
	return result
}
