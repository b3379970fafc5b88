// Package main provides the entry point for the dayone-export CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/dayone-export/internal/config"
	"github.com/gorewood/dayone-export/internal/envfile"
	"github.com/gorewood/dayone-export/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// stringFlag reads a persistent string flag from the command hierarchy.
func stringFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// newPrinter builds the printer for cmd, honoring --json and --color.
// Errors and warnings go to the command's error stream.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	isTTY := output.ResolveColorMode(stringFlag(cmd, "color"), output.IsTTY(out))
	return output.NewPrinter(out, isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())
}

// loadConfig reads the configuration named by --config, or the default
// search path when the flag is empty.
func loadConfig(cmd *cobra.Command, printer *output.Printer) (*config.Config, error) {
	cfg, err := config.Load(stringFlag(cmd, "config"))
	if err != nil {
		userErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(userErr)
		return nil, userErr
	}
	return cfg, nil
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	err := fang.Execute(ctx, cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Given an input file it behaves like
// the convert command.
func newRootCmd() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "dayone-export [input]",
		Short: "Convert Day One journals to HTML, Markdown, text, LaTeX, Word, PDF and EPUB",
		Long: `dayone-export - Convert a Day One JSON export or a Markdown file into documents.

Every run writes one file per format into a folder named after the input:
  Journal.json -> Journal/output_Journal.json_<date>.html, .md, .txt, .tex,
                  .docx, .pdf and .epub

PDF output needs LibreOffice (soffice) or docx2pdf on the PATH; without one
the PDF is skipped and the other formats are still written.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runConvert(cmd, flags, args[0])
			}
			if isJSONMode(cmd) {
				printer := newPrinter(cmd)
				err := output.NewUserError("no input specified. Run 'dayone-export --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// DAYONE_EXPORT_* values in .env files fill in unset environment
	// variables before any command reads its configuration.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles(newPrinter(cmd))
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always or never")
	cmd.PersistentFlags().String("config", "", "Config file (default: dayone-export.yaml in . or the config dir)")
	bindConvertFlags(cmd, flags)

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order; the first file to set a
// variable wins and the real environment beats them all.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. <config dir>/env
func loadEnvFiles(printer *output.Printer) {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	for _, path := range paths {
		if _, err := envfile.Load(path, config.EnvPrefix+"_"); err != nil {
			printer.Warn("%v", err)
		}
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newConvertCmd(), "core")
	addGroupedCommand(cmd, newEntriesCmd(), "core")
	addGroupedCommand(cmd, newFormatsCmd(), "admin")
	addGroupedCommand(cmd, newDoctorCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
