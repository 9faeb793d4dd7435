// Command svchef is a facade for SystemVerilog interface utilities. Its
// fetchif subcommand extracts a module's boundary (ports and
// parameters) from a source file and prints it as markdown, CSV or a
// standalone HTML page.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/svchef/internal/config"
	"github.com/example/svchef/internal/errors"
	"github.com/example/svchef/internal/extract"
	"github.com/example/svchef/internal/logger"
	"github.com/example/svchef/internal/render"
	"github.com/example/svchef/internal/strategy"
	"github.com/example/svchef/internal/svlang"
)

var (
	format       string
	configPath   string
	verbose      bool
	strategyName string
	excludePat   string
	moduleName   string
	outputFile   string
	includeDirs  []string
)

var rootCmd = &cobra.Command{
	Use:   "svchef",
	Short: "SystemVerilog interface utilities",
	Long: `svchef extracts module interface documentation from SystemVerilog
sources. The fetchif subcommand parses a file, resolves port types
through any imported packages, and renders the module's ports and
parameters in the selected output format.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return errors.New("no command given")
	},
}

var fetchifCmd = &cobra.Command{
	Use:   "fetchif FILE",
	Short: "Extract a module's ports and parameters",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetchIf,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&format, "format", "markdown",
		"Output format ("+strings.Join(render.Registry.Keys(), "|")+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false,
		"Enable debug logging on stderr")

	fetchifCmd.Flags().StringVar(&strategyName, "strategy", "genesis2",
		"Source interpretation strategy ("+strings.Join(strategy.Registry.Keys(), "|")+")")
	fetchifCmd.Flags().StringVar(&excludePat, "exclude", "",
		"Omit ports and parameters whose name matches this regular expression")
	fetchifCmd.Flags().StringVar(&moduleName, "module", "",
		"Module to document (required when the file declares several)")
	fetchifCmd.Flags().StringVar(&outputFile, "output", "",
		"Write the rendered document to a file instead of stdout")
	fetchifCmd.Flags().StringArrayVar(&includeDirs, "include-dir", nil,
		"Extra directory to search for imported package files (repeatable)")

	rootCmd.AddCommand(fetchifCmd)
}

func runFetchIf(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger.Initialize(cfg.Verbose)

	// The filter compiles before any source is read, so a bad pattern
	// fails the run before work starts.
	filter, err := render.CompileFilter(cfg.Exclude)
	if err != nil {
		return err
	}

	strat, err := strategy.Registry.Create(cfg.Strategy)
	if err != nil {
		return err
	}
	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	file := args[0]
	raw, err := os.ReadFile(file)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "reading %s", file), errors.ErrSourceRead)
	}

	imports := strat.ExtractImports(string(raw))
	searchDirs := append([]string{filepath.Dir(file)}, cfg.IncludeDirs...)
	pkgFiles := svlang.ResolvePackages(imports, searchDirs)
	logger.Debugw("design inputs resolved", "file", file,
		"imports", imports, "packages", pkgFiles)

	sources := []svlang.Source{{Path: file, Text: strat.CleanSource(string(raw))}}
	pkgSources, err := svlang.LoadSources(pkgFiles, strat.CleanSource)
	if err != nil {
		return err
	}
	sources = append(sources, pkgSources...)

	unit, err := svlang.Compile(sources...)
	if err != nil {
		return err
	}

	target, err := extract.SelectModule(unit, cfg.Module)
	if err != nil {
		return err
	}
	doc, err := extract.Extract(unit, target, strat)
	if err != nil {
		return err
	}

	text, err := renderer.Render(doc, filter)
	if err != nil {
		return err
	}
	return writeOutput(cfg.Output, text)
}

// runSettings joins the config file values with the run-only flags that
// have no file key.
type runSettings struct {
	*config.Config
	Module string
	Output string
}

// resolveConfig loads the config file and overlays explicitly set
// flags, giving flag > file > default precedence.
func resolveConfig(cmd *cobra.Command) (*runSettings, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = format
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = strategyName
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = excludePat
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	cfg.IncludeDirs = append(cfg.IncludeDirs, includeDirs...)
	return &runSettings{Config: cfg, Module: moduleName, Output: outputFile}, nil
}

// newRenderer instantiates the configured format and applies the
// renderer settings only the config file carries.
func newRenderer(cfg *runSettings) (render.Renderer, error) {
	renderer, err := render.Registry.Create(cfg.Format)
	if err != nil {
		return nil, err
	}
	switch r := renderer.(type) {
	case *render.CSV:
		r.MaxDepth = cfg.CSVMaxDepth
	case *render.HTML:
		r.TitleSuffix = cfg.HTMLTitleSuffix
	}
	return renderer, nil
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	logger.Debugw("document written", "file", path, "bytes", len(text))
	return nil
}

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
