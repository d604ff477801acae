package cmd

import (
	"fmt"

	"github.com/bimmerbailey/parley/internal/config"
	"github.com/bimmerbailey/parley/internal/output"
	"github.com/bimmerbailey/parley/internal/preprocess"
	"github.com/bimmerbailey/parley/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [flags] [file|-]...",
	Short: "Normalize chat exports into anonymized transcripts",
	Long: `Normalize one or more chat exports and print the transcripts.

Structured exports become "Person N: message" transcripts; other text is
cleaned generically. With no file argument, or with "-", the export is read
from standard input. Glob patterns are expanded.

Examples:
  parley normalize chat.txt
  parley normalize "exports/*.txt"
  parley normalize --redact --redact-patterns email,phone chat.txt
  parley normalize --max-chars 2000 --format json chat.txt`,
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().Int("max-chars", 0, fmt.Sprintf("clip each transcript to this many characters (0 disables, %d suits model context)", preprocess.DefaultMaxChars))
	normalizeCmd.Flags().Int("technical-limit", 1000, "drop code-like messages longer than this many characters")
	normalizeCmd.Flags().Bool("redact", false, "replace personal data in messages with placeholders")
	normalizeCmd.Flags().StringSlice("redact-patterns", nil, "redaction patterns (email, phone, ipv4, credit_card, api_key, jwt)")
	normalizeCmd.Flags().String("charset", "", "input charset (default: detect)")

	_ = viper.BindPFlag("pipeline.max_chars", normalizeCmd.Flags().Lookup("max-chars"))
	_ = viper.BindPFlag("pipeline.technical_limit", normalizeCmd.Flags().Lookup("technical-limit"))
	_ = viper.BindPFlag("redaction.enabled", normalizeCmd.Flags().Lookup("redact"))
	_ = viper.BindPFlag("redaction.patterns", normalizeCmd.Flags().Lookup("redact-patterns"))

	rootCmd.AddCommand(normalizeCmd)
}

// fileResult pairs a normalization result with the file it came from.
type fileResult struct {
	File   string             `json:"file" yaml:"file"`
	Result *preprocess.Result `json:"result" yaml:"result"`
}

func runNormalize(cmd *cobra.Command, args []string) error {
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
	normalizer := a.newNormalizer()

	results := make([]fileResult, 0, len(files))
	for _, file := range files {
		raw, err := reader.ReadFile(file)
		if err != nil {
			return err
		}

		result, err := normalizer.NormalizeWithReport(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(file), err)
		}
		a.clip(file, result)

		results = append(results, fileResult{File: displayName(file), Result: result})
	}

	return writeResults(a.newWriter(cmd), cmd, results)
}

func writeResults(w *output.Writer, cmd *cobra.Command, results []fileResult) error {
	if len(results) == 1 {
		return w.WriteResult(results[0].Result)
	}

	switch w.Format() {
	case output.FormatJSON:
		return w.WriteJSON(results)
	case output.FormatYAML:
		return w.WriteYAML(results)
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", r.File)
		if err := w.WriteResult(r.Result); err != nil {
			return err
		}
	}
	return nil
}

// newNormalizer builds a Normalizer from the pipeline and redaction config.
func (a *app) newNormalizer() *preprocess.Normalizer {
	opts := []preprocess.Option{
		preprocess.WithTechnicalLimit(a.cfg.Pipeline.TechnicalLimit),
		preprocess.WithRedaction(a.cfg.Redaction.Enabled),
		preprocess.WithLogger(a.logger),
	}
	if len(a.cfg.Redaction.Patterns) > 0 {
		opts = append(opts, preprocess.WithRedactionPatterns(a.cfg.Redaction.Patterns))
	}
	return preprocess.New(opts...)
}

// clip applies pipeline.max_chars to the transcript.
func (a *app) clip(file string, result *preprocess.Result) {
	transcript, clipped := preprocess.Clip(result.Transcript, a.cfg.Pipeline.MaxChars)
	if !clipped {
		return
	}
	a.logger.Warn("transcript clipped",
		zap.String("file", displayName(file)),
		zap.Int("max_chars", a.cfg.Pipeline.MaxChars),
		zap.Int("estimated_tokens", preprocess.EstimateTokens(result.Transcript)),
	)
	result.Transcript = transcript
}

// inputFiles expands args, reading stdin when none are given.
func inputFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{config.Stdin}, nil
	}
	return config.ExpandGlobs(args)
}

func newSourceReader(cmd *cobra.Command) *source.Reader {
	opts := []source.Option{source.WithStdin(cmd.InOrStdin())}
	if charset, _ := cmd.Flags().GetString("charset"); charset != "" {
		opts = append(opts, source.WithCharset(charset))
	}
	return source.New(opts...)
}

func displayName(file string) string {
	if file == config.Stdin {
		return "<stdin>"
	}
	return file
}
