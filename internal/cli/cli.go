// Package cli implements the godue command-line interface.
//
// The CLI is the offline companion to the in-process collector: the
// "pickle" sink persists one snapshot per run, and "godue summary" reads
// any number of those snapshots and aggregates them into a single report.
// Commands are built with cobra and log through charmbracelet/log; all
// commands support --verbose (-v) for debug-level output.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/duecredit/godue/pkg/buildinfo"
)

// appName is the application name used for display and completions.
const appName = "godue"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "godue reports which citable works your code actually used",
		Long:         `godue aggregates and reports citation snapshots produced by programs instrumented with the due collector, so a run's actually-used papers, tools, and datasets can be credited.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.completionCommand())

	return root
}
