package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/bimmerbailey/parley/internal/analyzer"
	"github.com/bimmerbailey/parley/internal/output"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] [file|-]",
	Short: "Show conversation statistics",
	Long: `Normalize a chat export and summarize it: messages per participant,
time range, transcript size, and what was discarded along the way.
Participants are reported by pseudonym only.

Examples:
  parley stats chat.txt
  parley stats --format json chat.txt
  parley stats --group-by day --top 5 chat.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("group-by", "", "group messages by field (participant, day)")
	statsCmd.Flags().Int("top", 10, "number of groups to show with --group-by")
	statsCmd.Flags().String("charset", "", "input charset (default: detect)")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	files, err := inputFiles(args)
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return fmt.Errorf("stats takes a single export, got %d", len(files))
	}

	raw, err := newSourceReader(cmd).ReadFile(files[0])
	if err != nil {
		return err
	}

	result, err := a.newNormalizer().NormalizeWithReport(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(files[0]), err)
	}

	an := analyzer.New()
	w := a.newWriter(cmd)

	groupBy, _ := cmd.Flags().GetString("group-by")
	if groupBy == "" {
		return w.WriteStats(an.ComputeStats(result))
	}

	topN, _ := cmd.Flags().GetInt("top")
	groups, err := an.GroupBy(result.Messages, groupBy, topN)
	if err != nil {
		return err
	}

	switch w.Format() {
	case output.FormatJSON:
		return w.WriteJSON(groups)
	case output.FormatYAML:
		return w.WriteYAML(groups)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tCOUNT\tPERCENT")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", g.Key, g.Count, g.Percent)
	}
	return tw.Flush()
}
