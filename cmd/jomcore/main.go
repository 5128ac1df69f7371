package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChristianFeldmann/jom/input"
	"github.com/ChristianFeldmann/jom/macro"
	"github.com/ChristianFeldmann/jom/model"
	"github.com/ChristianFeldmann/jom/parse"
)

func main() {
	cfg := &Config{Makefile: DefaultMakefile}

	var defines []string
	var target string

	rootCmd := &cobra.Command{
		Use:     "jomcore",
		Short:   AppShort,
		Long:    AppLong,
		Version: AppVersion,
	}
	rootCmd.PersistentFlags().StringVarP(&cfg.Makefile, "file", "f", cfg.Makefile, "Path to the makefile to parse")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Silent, "silent", "s", false, "Suppress command echo (.SILENT default)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.IgnoreErrors, "ignore-errors", "i", false, "Ignore nonzero exit codes (.IGNORE default)")
	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().BoolVar(&cfg.JSONLogs, "json", false, "Emit logs as JSON instead of text")
	rootCmd.PersistentFlags().StringArrayVarP(&defines, "define", "D", nil, "Predefine a macro as NAME=VALUE (repeatable)")

	parseCmd := &cobra.Command{
		Use:   "parse [target]",
		Short: "Parse a makefile and print the resulting target graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				target = args[0]
			}
			applyEnvironmentOverrides(cfg)
			return runParse(cfg, defines, target)
		},
	}

	expandCmd := &cobra.Command{
		Use:   "expand <string>",
		Short: "Expand macro invocations in a string and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEnvironmentOverrides(cfg)
			return runExpand(cfg, defines, args[0])
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the jomcore version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(AppVersion)
			return nil
		},
	}

	rootCmd.AddCommand(parseCmd, expandCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newTableWithDefines builds a macro.Table seeded with -D NAME=VALUE
// command-line macros, mirroring environment macros into the real process
// environment.
func newTableWithDefines(defines []string) (*macro.Table, error) {
	table := macro.NewTable(osEnvironmentSink{})
	for _, def := range defines {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -D value %q, expected NAME=VALUE", def)
		}
		if err := table.SetCommandLine(name, value, false); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func runParse(cfg *Config, defines []string, target string) error {
	log := newLogger(cfg.Debug, cfg.JSONLogs, os.Stderr)

	table, err := newTableWithDefines(defines)
	if err != nil {
		return err
	}

	stream, file, err := newFileStream(cfg.Makefile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.Makefile, err)
	}
	defer file.Close()

	var activeTargets []string
	if target != "" {
		activeTargets = []string{target}
	}

	cursor := input.NewCursor(stream)
	opts := input.Options{SuppressOutputMessages: cfg.Silent, StopOnErrors: !cfg.IgnoreErrors}
	mf, resolved, err := parse.Parse(cursor, table, input.OSFileMeta(), opts, activeTargets, log)
	if err != nil {
		return err
	}

	printMakefile(mf, resolved)
	return nil
}

func runExpand(cfg *Config, defines []string, text string) error {
	table, err := newTableWithDefines(defines)
	if err != nil {
		return err
	}
	expander := macro.NewExpander(table)
	out, err := expander.Expand(text, false)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func printMakefile(mf *model.Makefile, activeTargets []string) {
	fmt.Printf("active targets: %s\n", strings.Join(activeTargets, ", "))
	for _, block := range mf.Targets() {
		fmt.Printf("%s: %s\n", block.Target, strings.Join(block.Dependents, " "))
		for _, cmd := range block.Commands {
			fmt.Printf("\t%s\n", cmd.CommandLine)
		}
	}
	for _, rule := range mf.InferenceRules {
		fmt.Printf("{%s}%s{%s}%s:\n", rule.FromSearchPath, rule.FromExtension, rule.ToSearchPath, rule.ToExtension)
	}
}
