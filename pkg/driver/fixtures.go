package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"arcscript/interpreter-go/pkg/interpreter"
	"arcscript/interpreter-go/pkg/parser"
	"arcscript/interpreter-go/pkg/runtime"
)

// Fixture is one YAML script expectation loaded from disk. Stdout and
// Result are pointers so a fixture can distinguish "expect empty" from
// "do not check".
type Fixture struct {
	Name        string
	Path        string
	Description string
	Source      string
	MaxSteps    int
	Stdout      *string
	Result      *string
	Errors      []string
}

// FixtureResult reports one fixture run.
type FixtureResult struct {
	Fixture  *Fixture
	Failures []string
}

// Passed reports whether the fixture met every expectation.
func (r *FixtureResult) Passed() bool {
	return len(r.Failures) == 0
}

// LoadFixture parses a single fixture file.
func LoadFixture(path string) (*Fixture, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("fixture: open %s: %w", abs, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw fixtureFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("fixture: %s is empty", abs)
		}
		return nil, fmt.Errorf("fixture: parse %s: %w", abs, err)
	}

	fixture := raw.toFixture(abs)
	if fixture.Source == "" {
		return nil, fmt.Errorf("fixture: %s missing source", abs)
	}
	if fixture.MaxSteps < 0 {
		return nil, fmt.Errorf("fixture: %s max-steps must not be negative", abs)
	}
	return fixture, nil
}

// LoadFixtureDir collects every .yml/.yaml fixture under dir, sorted by path.
func LoadFixtureDir(dir string) ([]*Fixture, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("fixture: resolve %s: %w", dir, err)
	}
	var paths []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yml", ".yaml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixture: traverse %s: %w", abs, err)
	}
	sort.Strings(paths)

	fixtures := make([]*Fixture, 0, len(paths))
	for _, path := range paths {
		fixture, err := LoadFixture(path)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture)
	}
	return fixtures, nil
}

// RunFixture executes a fixture's source and checks its expectations.
// Every entry in Errors must appear as a substring of some produced
// diagnostic; with no Errors listed, any diagnostic fails the fixture.
func RunFixture(fixture *Fixture) *FixtureResult {
	result := &FixtureResult{Fixture: fixture}

	var produced []string
	var stdout bytes.Buffer
	var value runtime.Value

	program, parseErrs := parser.Parse(fixture.Source)
	if len(parseErrs) > 0 {
		for _, parseErr := range parseErrs {
			produced = append(produced, formatFixtureDiagnostic(parseErr))
		}
	} else {
		var opts []interpreter.Option
		if fixture.MaxSteps > 0 {
			opts = append(opts, interpreter.WithMaxSteps(fixture.MaxSteps))
		}
		interp := interpreter.New(&stdout, opts...)
		evaluated, err := interp.Evaluate(program)
		if err != nil {
			produced = append(produced, err.Error())
		} else {
			value = evaluated
		}
	}

	for _, want := range fixture.Errors {
		if !containsMatch(produced, want) {
			result.Failures = append(result.Failures,
				fmt.Sprintf("expected error containing %q, got %s", want, describeProduced(produced)))
		}
	}
	if len(fixture.Errors) == 0 && len(produced) > 0 {
		result.Failures = append(result.Failures,
			fmt.Sprintf("unexpected errors: %s", strings.Join(produced, "; ")))
	}

	if fixture.Stdout != nil && stdout.String() != *fixture.Stdout {
		result.Failures = append(result.Failures,
			fmt.Sprintf("stdout mismatch: expected %q, got %q", *fixture.Stdout, stdout.String()))
	}
	if fixture.Result != nil {
		if value == nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("expected result %q, but evaluation failed", *fixture.Result))
		} else if got := runtime.Stringify(value); got != *fixture.Result {
			result.Failures = append(result.Failures,
				fmt.Sprintf("result mismatch: expected %q, got %q", *fixture.Result, got))
		}
	}
	return result
}

func formatFixtureDiagnostic(err *parser.ParseError) string {
	return fmt.Sprintf("%d:%d: %s", err.Location.Line, err.Location.Column, err.Message)
}

func containsMatch(produced []string, want string) bool {
	for _, have := range produced {
		if strings.Contains(have, want) {
			return true
		}
	}
	return false
}

func describeProduced(produced []string) string {
	if len(produced) == 0 {
		return "none"
	}
	return strings.Join(produced, "; ")
}

type fixtureFile struct {
	Description string   `yaml:"description"`
	Source      string   `yaml:"source"`
	MaxSteps    int      `yaml:"max-steps"`
	Stdout      *string  `yaml:"stdout"`
	Result      *string  `yaml:"result"`
	Errors      []string `yaml:"errors"`
}

func (ff fixtureFile) toFixture(path string) *Fixture {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Fixture{
		Name:        name,
		Path:        path,
		Description: strings.TrimSpace(ff.Description),
		Source:      ff.Source,
		MaxSteps:    ff.MaxSteps,
		Stdout:      ff.Stdout,
		Result:      ff.Result,
		Errors:      ff.Errors,
	}
}
