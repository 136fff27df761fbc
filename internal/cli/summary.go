package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duecredit/godue/pkg/due"
	"github.com/duecredit/godue/pkg/sink"
)

// summaryCommand creates the "summary" command, which aggregates one or
// more per-run snapshot files into a single citation report.
func (c *CLI) summaryCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "summary [snapshot...]",
		Short: "Aggregate citation snapshots into a single report",
		Long: `Summary reads one or more snapshot files written by the "pickle" output
sink (default: .duecredit.p in the working directory) and prints the merged
citations. Counts for the same entry are summed across runs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{sink.DefaultSnapshotPath}
			}

			// Unreadable snapshots are skipped so one bad run does not
			// hide the rest; the command fails only when nothing loads.
			snaps := make([]*sink.Snapshot, 0, len(paths))
			for _, path := range paths {
				snap, err := sink.ReadSnapshot(path)
				if err != nil {
					printError("skipping %s: %v", path, err)
					continue
				}
				c.Logger.Debug("loaded snapshot", "path", path, "run", snap.RunID,
					"citations", snap.Collector.NumCitations())
				snaps = append(snaps, snap)
			}
			if len(snaps) == 0 {
				return fmt.Errorf("no readable snapshots among %d path(s)", len(paths))
			}

			merged, err := sink.Merge(snaps...)
			if err != nil {
				return err
			}

			switch format {
			case "text":
				return writeSummaryText(cmd, merged, len(snaps))
			case "json":
				return writeSummaryJSON(cmd, merged, len(snaps))
			default:
				return fmt.Errorf("unknown format %q (want \"text\" or \"json\")", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", `output format: "text" or "json"`)
	return cmd
}

func writeSummaryText(cmd *cobra.Command, c *due.Collector, runs int) error {
	w := cmd.OutOrStdout()

	citations := c.Citations()
	header := fmt.Sprintf("%d citations across %d run(s)", len(citations), runs)
	if _, err := fmt.Fprintln(w, styleTitle.Render(header)); err != nil {
		return err
	}
	for _, cit := range citations {
		line := fmt.Sprintf("%s %s",
			styleNumber.Render(fmt.Sprintf("%5dx", cit.Count())),
			styleValue.Render(cit.Entry().Key()))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if use := cit.Use(); use != "" {
			if _, err := fmt.Fprintln(w, "       "+styleDim.Render("use: "+use)); err != nil {
				return err
			}
		}
		if level := cit.Level(); level != "" {
			if _, err := fmt.Fprintln(w, "       "+styleDim.Render("level: "+level)); err != nil {
				return err
			}
		}
	}
	return nil
}

type summaryJSON struct {
	Runs      int                `json:"runs"`
	Citations []summaryCitation  `json:"citations"`
	Entries   []summaryEntryJSON `json:"entries"`
}

type summaryCitation struct {
	Key   string `json:"key"`
	Use   string `json:"use,omitempty"`
	Level string `json:"level,omitempty"`
	Count int64  `json:"count"`
}

type summaryEntryJSON struct {
	Key    string            `json:"key"`
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeSummaryJSON(cmd *cobra.Command, c *due.Collector, runs int) error {
	out := summaryJSON{Runs: runs}
	for _, cit := range c.Citations() {
		out.Citations = append(out.Citations, summaryCitation{
			Key:   cit.Entry().Key(),
			Use:   cit.Use(),
			Level: cit.Level(),
			Count: cit.Count(),
		})
	}
	for _, e := range c.Entries() {
		out.Entries = append(out.Entries, summaryEntryJSON{
			Key:    e.Key(),
			Kind:   string(e.Kind()),
			Fields: e.Fields(),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
