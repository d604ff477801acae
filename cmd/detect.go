package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/bimmerbailey/parley/internal/classify"
	"github.com/bimmerbailey/parley/internal/output"
	"github.com/bimmerbailey/parley/internal/parser"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [flags] [file|-]...",
	Short: "Report whether inputs are structured chat exports",
	Long: `Detect prints, for each input, which normalization path it would take:
"structured" for chat exports with "date, time - sender: message" headers,
"generic" for anything else.

Examples:
  parley detect chat.txt notes.txt
  parley detect --format json "exports/*"`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().String("charset", "", "input charset (default: detect)")

	rootCmd.AddCommand(detectCmd)
}

// detection is the detect result for one input.
type detection struct {
	File       string        `json:"file" yaml:"file"`
	Format     parser.Format `json:"format" yaml:"format"`
	Lines      int           `json:"lines" yaml:"lines"`
	Promotions int           `json:"promotional_lines" yaml:"promotional_lines"`
	Technical  int           `json:"technical_lines" yaml:"technical_lines"`
	Signatures []string      `json:"signatures,omitempty" yaml:"signatures,omitempty"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	files, err := inputFiles(args)
	if err != nil {
		return err
	}

	reader := newSourceReader(cmd)
	detections := make([]detection, 0, len(files))
	for _, file := range files {
		raw, err := reader.ReadFile(file)
		if err != nil {
			return err
		}
		detections = append(detections, detect(displayName(file), raw))
	}

	w := a.newWriter(cmd)
	switch w.Format() {
	case output.FormatJSON:
		return w.WriteJSON(detections)
	case output.FormatYAML:
		return w.WriteYAML(detections)
	case output.FormatTable:
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tFORMAT\tLINES\tPROMOTIONAL\tTECHNICAL\tSIGNATURES")
		for _, d := range detections {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n", d.File, d.Format, d.Lines, d.Promotions, d.Technical, strings.Join(d.Signatures, ","))
		}
		return tw.Flush()
	default:
		for _, d := range detections {
			if len(d.Signatures) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (code: %s)\n", d.File, d.Format, strings.Join(d.Signatures, ", "))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", d.File, d.Format)
		}
		return nil
	}
}

// detect classifies raw, counts the lines the classifier flags and names
// the code signatures seen on technical lines.
func detect(file, raw string) detection {
	d := detection{File: file, Format: parser.DetectFormat(raw)}
	seen := make(map[string]struct{})
	for _, line := range nonEmptyLines(raw) {
		d.Lines++
		switch classify.Classify(line) {
		case classify.Promotional:
			d.Promotions++
		case classify.TechnicalBulk:
			d.Technical++
			for _, name := range classify.Matches(line) {
				if _, ok := seen[name]; !ok {
					seen[name] = struct{}{}
					d.Signatures = append(d.Signatures, name)
				}
			}
		}
	}
	sort.Strings(d.Signatures)
	return d
}

func nonEmptyLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
