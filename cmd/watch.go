package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bimmerbailey/parley/internal/parser"
	"github.com/bimmerbailey/parley/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Re-normalize a chat export whenever it changes",
	Long: `Watch follows an export on disk and prints a fresh transcript each time
its content changes. Rewrites that leave the content identical are skipped.
A malformed export is reported and watching continues.

Examples:
  parley watch chat.txt
  parley watch --debounce 1s --format json chat.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("debounce", "250ms", "quiet period before re-reading the export")
	watchCmd.Flags().String("dedupe-ttl", "10m", "how long identical content is skipped (supports d for days)")
	watchCmd.Flags().String("charset", "", "input charset (default: detect)")

	_ = viper.BindPFlag("watch.debounce", watchCmd.Flags().Lookup("debounce"))
	_ = viper.BindPFlag("watch.dedupe_ttl", watchCmd.Flags().Lookup("dedupe-ttl"))

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	debounce, err := a.cfg.Watch.DebounceInterval(watch.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("invalid watch.debounce: %w", err)
	}
	dedupe, err := a.cfg.Watch.DedupeWindow(watch.DefaultDedupeTTL)
	if err != nil {
		return fmt.Errorf("invalid watch.dedupe_ttl: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(watch.Options{
		Path:      args[0],
		Debounce:  debounce,
		DedupeTTL: dedupe,
		OnChange:  a.onExportChange(cmd, args[0]),
	})
	return w.Run(ctx)
}

// onExportChange normalizes new content and writes the result. Malformed
// exports are logged so that a half-written file does not end the watch.
func (a *app) onExportChange(cmd *cobra.Command, file string) func(context.Context, []byte) error {
	reader := newSourceReader(cmd)
	normalizer := a.newNormalizer()
	writer := a.newWriter(cmd)

	return func(_ context.Context, content []byte) error {
		raw, err := reader.Decode(content)
		if err != nil {
			a.logger.Error("failed to decode export", zap.String("file", file), zap.Error(err))
			return nil
		}

		start := time.Now()
		result, err := normalizer.NormalizeWithReport(raw)
		var formatErr *parser.FormatError
		if errors.As(err, &formatErr) {
			a.logger.Error("malformed export", zap.String("file", file), zap.Int("line", formatErr.Line), zap.Error(err))
			return nil
		}
		if err != nil {
			return err
		}
		a.clip(file, result)

		a.logger.Info("export normalized",
			zap.String("file", file),
			zap.String("format", string(result.Format)),
			zap.Int("messages", len(result.Messages)),
			zap.Duration("took", time.Since(start)),
		)
		return writer.WriteResult(result)
	}
}
