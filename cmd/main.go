// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ebook-meta/internal/batch"
	"ebook-meta/internal/config"
	"ebook-meta/internal/formatters"
	_ "ebook-meta/internal/formatters/csv"
	_ "ebook-meta/internal/formatters/json"
	_ "ebook-meta/internal/formatters/junit"
	"ebook-meta/internal/formatters/text"
	_ "ebook-meta/internal/formatters/yaml"
	"ebook-meta/internal/help"
	"ebook-meta/internal/observability"
	"ebook-meta/internal/template"
	"ebook-meta/internal/version"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// cliOptions holds the command line flags
type cliOptions struct {
	configFile   string
	template     string
	title        string
	subject      string
	description  string
	logAvailable bool
	dryRun       bool
	noColor      bool
	debug        bool
	report       string
	reportFormat string
	showVersion  bool
	listFields   bool
}

// environment is what a run needs from the process
type environment struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	isTTY  bool
}

func main() {
	env := environment{
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
		isTTY:  isTerminal(os.Stdout),
	}

	exitCode := 0
	rootCmd := newRootCmd(env, &exitCode)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func newRootCmd(env environment, exitCode *int) *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "ebook-meta [directory]",
		Short: "Set PDF metadata from structured file names",
		Long: `ebook-meta walks a directory tree, matches every PDF file name against a
template and writes the captured values into the PDF document information.

Settings come from flags, environment variables, a YAML config file and
built-in defaults, in that order of precedence.

Examples:
  DIRECTORY=/srv/magazines TEMPLATE="{author} {type} {year} - Ausgabe {ausgabe} ({year}-{month}-{day})" ebook-meta
  ebook-meta --template "{author} {type} {year}" --title "{ausgabe}/{year}" /srv/magazines
  ebook-meta --dry-run --report run.json /srv/magazines`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*exitCode = run(cmd, args, opts, env)
			return nil
		},
	}
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./ebook-meta.yaml or <user config dir>/ebook-meta/config.yaml)")
	flags.StringVarP(&opts.template, "template", "t", "", "filename template (overrides TEMPLATE)")
	flags.StringVar(&opts.title, "title", "", "title template (overrides TITLE)")
	flags.StringVar(&opts.subject, "subject", "", "subject template (overrides SUBJECT)")
	flags.StringVar(&opts.description, "description", "", "description/keywords template (overrides DESCRIPTION)")
	flags.BoolVar(&opts.logAvailable, "log-available", false, "print all metadata keys found in each file")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "show changes without saving files")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging to stderr")
	flags.StringVar(&opts.report, "report", "", "write a run report to this file")
	flags.StringVar(&opts.reportFormat, "report-format", "", "report format: csv, json, junit, text, yaml (default: from file extension, else json)")
	flags.BoolVar(&opts.listFields, "list-fields", false, "list the filename template placeholders")
	flags.BoolVar(&opts.showVersion, "version", false, "show version information")

	return cmd
}

// run executes one metadata update and returns the process exit code
func run(cmd *cobra.Command, args []string, opts *cliOptions, env environment) int {
	if opts.showVersion {
		fmt.Fprintln(env.stdout, version.Info())
		return 0
	}
	if opts.listFields {
		help.NewSystem(env.stdout, opts.noColor || env.getenv(config.EnvNoColor) != "" || !env.isTTY).ShowFields()
		return 0
	}

	cfg, err := config.Load(opts.configFile, env.getenv)
	if err != nil {
		fmt.Fprintf(env.stdout, "Error: %v\n", err)
		return 1
	}
	applyFlags(cmd, args, opts, cfg)

	if err := cfg.Validate(); err != nil {
		switch {
		case errors.Is(err, config.ErrMissingDirectory), errors.Is(err, config.ErrMissingTemplate):
			fmt.Fprintln(env.stdout, "Error: Missing required environment variables")
			fmt.Fprintf(env.stdout, "Not set: %s (environment, command line flag or config file)\n\n", strings.Join(cfg.Missing(), ", "))
			help.NewSystem(env.stdout, true).ShowUsage()
		case errors.Is(err, config.ErrNotDirectory):
			fmt.Fprintln(env.stdout, "Error: Provided path is not a directory")
		default:
			fmt.Fprintf(env.stdout, "Error: %v\n", err)
		}
		return 1
	}

	pattern, err := template.Compile(cfg.Template)
	if err != nil {
		fmt.Fprintf(env.stdout, "Error: invalid template: %v\n", err)
		return 1
	}

	reportFormat := ""
	if cfg.Report.File != "" {
		reportFormat = formatters.ResolveFormat(cfg.Report.Format, cfg.Report.File)
		if _, ok := formatters.Get(reportFormat); !ok {
			fmt.Fprintf(env.stdout, "Error: unsupported report format '%s'. Available formats: %v\n", reportFormat, formatters.List())
			return 1
		}
	}

	printer := text.NewPrinter(env.stdout, env.stderr, cfg.NoColor || !env.isTTY)
	if len(pattern.Fields()) == 0 {
		printer.Warning("template %q has none of the placeholders {%s}", cfg.Template, strings.Join(template.KnownFields, "}, {"))
	}

	var observer *observability.DebugObserver
	if cfg.Debug {
		observer = observability.NewDebugObserver(env.stderr)
		observer.LogDetail("config", fmt.Sprintf("directory=%s template=%q dry_run=%t", cfg.Directory, pattern.Template(), cfg.DryRun))
		observer.LogDetail("template", fmt.Sprintf("compiled to %s, captures %s", pattern, strings.Join(pattern.Fields(), ",")))
	}

	finishDiscover := observer.StartStep("batch", "discover", cfg.Directory)
	files, err := batch.Discover(cfg.Directory, func(path string, err error) {
		printer.Warning("skipping %s: %v", path, err)
	})
	if err != nil {
		finishDiscover(false, err.Error())
		fmt.Fprintf(env.stdout, "Error: %v\n", err)
		return 1
	}
	finishDiscover(true, fmt.Sprintf("%d PDF files", len(files)))

	stats := &batch.Stats{}
	if len(files) == 0 {
		printer.NoFiles()
	} else {
		runner := batch.NewRunner(cfg, pattern, printer, observer)
		stats = runner.Run(files)
		printer.Summary(stats)
	}

	if cfg.Report.File != "" {
		if err := writeReport(cfg, reportFormat, stats); err != nil {
			printer.Warning("failed to write report: %v", err)
		}
	}

	return 0
}

// applyFlags overrides the loaded configuration with explicitly set flags
func applyFlags(cmd *cobra.Command, args []string, opts *cliOptions, cfg *config.Config) {
	if len(args) > 0 {
		cfg.Directory = args[0]
	}

	flags := cmd.Flags()
	strs := map[string]struct {
		dst *string
		val string
	}{
		"template":      {&cfg.Template, opts.template},
		"title":         {&cfg.Templates.Title, opts.title},
		"subject":       {&cfg.Templates.Subject, opts.subject},
		"description":   {&cfg.Templates.Description, opts.description},
		"report":        {&cfg.Report.File, opts.report},
		"report-format": {&cfg.Report.Format, opts.reportFormat},
	}
	for name, s := range strs {
		if flags.Changed(name) {
			*s.dst = s.val
		}
	}

	bools := map[string]struct {
		dst *bool
		val bool
	}{
		"log-available": {&cfg.LogAvailable, opts.logAvailable},
		"dry-run":       {&cfg.DryRun, opts.dryRun},
		"no-color":      {&cfg.NoColor, opts.noColor},
		"debug":         {&cfg.Debug, opts.debug},
	}
	for name, b := range bools {
		if flags.Changed(name) {
			*b.dst = b.val
		}
	}
}

// writeReport renders stats with the named formatter and writes the file
func writeReport(cfg *config.Config, format string, stats *batch.Stats) error {
	content, err := formatters.Export(format, stats, formatters.FormatterOptions{
		Directory: cfg.Directory,
		Template:  cfg.Template,
		DryRun:    cfg.DryRun,
		Version:   version.Short(),
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.Report.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(cfg.Report.File, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
