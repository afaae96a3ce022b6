// Command arcscript runs, checks, and tests ArcScript programs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"arcscript/interpreter-go/pkg/driver"
	"arcscript/interpreter-go/pkg/interpreter"
	"arcscript/interpreter-go/pkg/parser"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		tracerr.PrintSourceColor(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "arcscript",
		Usage:   "ArcScript interpreter",
		Version: "0.1.0",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "execute a script, or the manifest's default target",
				ArgsUsage: "[script.arc]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-steps",
						Usage: "abort after this many execution steps (0 = unlimited)",
					},
				},
				Action: func(c *cli.Context) error {
					path, maxSteps, err := resolveRunTarget(c)
					if err != nil {
						return err
					}
					return runScript(os.Stdout, path, maxSteps)
				},
			},
			{
				Name:  "repl",
				Usage: "interactive session",
				Action: func(c *cli.Context) error {
					return runREPL(os.Stdin, os.Stdout)
				},
			},
			{
				Name:      "check",
				Usage:     "parse a script and report diagnostics without running it",
				ArgsUsage: "<script.arc>",
				Action: func(c *cli.Context) error {
					source, path, err := readScriptArg(c, "check")
					if err != nil {
						return err
					}
					if _, parseErrs := parser.Parse(source); len(parseErrs) > 0 {
						printDiagnostics(os.Stderr, path, parseErrs)
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "parse a script and dump its syntax tree",
				ArgsUsage: "<script.arc>",
				Action: func(c *cli.Context) error {
					source, path, err := readScriptArg(c, "ast")
					if err != nil {
						return err
					}
					program, parseErrs := parser.Parse(source)
					if len(parseErrs) > 0 {
						printDiagnostics(os.Stderr, path, parseErrs)
						return cli.Exit("", 1)
					}
					repr.Println(program)
					return nil
				},
			},
			{
				Name:      "test",
				Usage:     "run YAML script fixtures",
				ArgsUsage: "[dir]",
				Action: func(c *cli.Context) error {
					dir := c.Args().First()
					if dir == "" {
						dir = "tests"
					}
					return runFixtures(os.Stdout, dir)
				},
			},
		},
	}
}

// resolveRunTarget picks the script for `run`: the positional argument if
// given, otherwise the default target of the nearest script.yml. The
// manifest's max-steps applies unless the flag was set explicitly.
func resolveRunTarget(c *cli.Context) (string, int, error) {
	path := c.Args().First()
	maxSteps := c.Int("max-steps")
	if path != "" {
		return path, maxSteps, nil
	}
	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		return "", 0, cli.Exit(err.Error(), 1)
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return "", 0, cli.Exit(err.Error(), 1)
	}
	target, err := manifest.DefaultTarget()
	if err != nil {
		return "", 0, cli.Exit(err.Error(), 1)
	}
	if !c.IsSet("max-steps") {
		maxSteps = manifest.MaxSteps
	}
	return manifest.EntryPath(target), maxSteps, nil
}

func runScript(out io.Writer, path string, maxSteps int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return tracerr.Wrap(err)
	}
	program, parseErrs := parser.Parse(string(data))
	if len(parseErrs) > 0 {
		printDiagnostics(os.Stderr, path, parseErrs)
		return cli.Exit("", 1)
	}
	var opts []interpreter.Option
	if maxSteps > 0 {
		opts = append(opts, interpreter.WithMaxSteps(maxSteps))
	}
	interp := interpreter.New(out, opts...)
	if _, err := interp.Evaluate(program); err != nil {
		return cli.Exit(fmt.Sprintf("Runtime error: %s", err), 1)
	}
	return nil
}

func runFixtures(w io.Writer, dir string) error {
	fixtures, err := driver.LoadFixtureDir(dir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(fixtures) == 0 {
		fmt.Fprintf(w, "no fixtures found in %s\n", dir)
		return nil
	}
	failed := 0
	for _, fixture := range fixtures {
		result := driver.RunFixture(fixture)
		if result.Passed() {
			fmt.Fprintf(w, "ok   %s\n", fixture.Name)
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL %s\n", fixture.Name)
		for _, failure := range result.Failures {
			fmt.Fprintf(w, "     %s\n", failure)
		}
	}
	fmt.Fprintf(w, "%d fixtures: %d passed, %d failed\n", len(fixtures), len(fixtures)-failed, failed)
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// readScriptArg loads the script named by the command's first argument.
func readScriptArg(c *cli.Context, command string) (string, string, error) {
	path := c.Args().First()
	if path == "" {
		return "", "", cli.Exit(fmt.Sprintf("%s: missing script path", command), 1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", tracerr.Wrap(err)
	}
	return string(data), path, nil
}

// printDiagnostics writes every parse diagnostic; callers exit nonzero
// after the full batch has printed.
func printDiagnostics(w io.Writer, path string, errs []*parser.ParseError) {
	for _, err := range errs {
		fmt.Fprintf(w, "%s:%d:%d: %s\n", path, err.Location.Line, err.Location.Column, err.Message)
	}
}
