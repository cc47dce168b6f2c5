// Command sfl is SFL's CLI front end: discover ./main.sfl in the
// current project, run the compiler pipeline over it, and print its
// value or its diagnostics (spec.md §6). Grounded on the original
// implementation's main.rs::run/complete_phase pair
// (_examples/original_source/src/main.rs) and playbymail-ottomap's
// cobra cmdRoot/AddCommand wiring (_examples/playbymail-ottomap/main.go).
package main

import (
	"fmt"
	"os"

	u "github.com/araddon/gou"
	"github.com/spf13/cobra"

	"github.com/sflang/sfl/internal/config"
	"github.com/sflang/sfl/internal/diag"
	"github.com/sflang/sfl/internal/driver"
	"github.com/sflang/sfl/internal/errs"
)

var argsRoot struct {
	resilient     bool
	displayErrors bool
}

var cmdRoot = &cobra.Command{
	Use:   "sfl",
	Short: "Root command for the SFL toolchain",
	Long:  `Compile and run SFL source files.`,
}

var cmdRun = &cobra.Command{
	Use:   "run",
	Short: "Run the current project's main.sfl",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Config{Resilient: argsRoot.resilient, DisplayErrors: argsRoot.displayErrors}
		return runProject(cfg)
	},
}

func main() {
	u.SetupLogging("info")

	cmdRoot.PersistentFlags().BoolVar(&argsRoot.resilient, "resilient", config.Default().Resilient, "continue past a recoverable phase error instead of halting")
	cmdRoot.PersistentFlags().BoolVar(&argsRoot.displayErrors, "display-errors", config.Default().DisplayErrors, "print diagnostics even when the run succeeds")
	cmdRoot.AddCommand(cmdRun)

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// runProject implements the original's run(): find ./main.sfl,
// read it, drive the pipeline, and render the outcome.
func runProject(cfg config.Config) error {
	entryPoint, err := findEntryPoint(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "No 'main.sfl' found in current project!")
		return err
	}

	contents, err := os.ReadFile(entryPoint)
	if err != nil {
		return fmt.Errorf("unable to read 'main.sfl': %w", err)
	}

	path := "./main.sfl"
	sources := map[string]string{path: string(contents)}

	report := driver.Run(cfg, sources)

	formatter := diag.NewFormatter(os.Stderr, func(p string) (string, error) {
		if p == path {
			return string(contents), nil
		}
		return "", fmt.Errorf("unknown source %q", p)
	})
	if !isTerminal(os.Stderr) {
		formatter.DisableColor()
	}

	if len(report.Diagnostics) > 0 && (report.Fatal || cfg.DisplayErrors) {
		formatter.FormatBundle(diag.Bundle{Path: path, Diagnostics: report.Diagnostics})
	}

	if report.Fatal {
		return errs.ErrFatalPhase
	}

	if result, ok := report.Results[path]; ok {
		fmt.Printf("%s : %s\n", result.Value, result.Type)
	}
	return nil
}

// findEntryPoint looks for a file named main.sfl directly inside dir,
// mirroring the original's std::fs::read_dir("./") scan rather than
// hardcoding the filename join (so a future multi-file project layout
// only has to change the glob, not the error path).
func findEntryPoint(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() && e.Name() == "main.sfl" {
			return dir + "/" + e.Name(), nil
		}
	}
	return "", errs.ErrMainNotFound
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
