package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/bimmerbailey/parley/internal/config"
	"github.com/bimmerbailey/parley/internal/logging"
	"github.com/bimmerbailey/parley/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Turn chat exports into anonymized transcripts",
	Long: `Parley normalizes exported chat logs into compact, anonymized transcripts.

Structured exports ("date, time - sender: message") are parsed message by
message: system notices, promotional spam and large code pastes are removed
and every sender is replaced with a stable "Person N" pseudonym. Anything
else is cleaned as generic text.

Examples:
  parley normalize chat.txt
  parley normalize --redact --format json chat.txt
  cat chat.txt | parley normalize -
  parley stats --format table chat.txt
  parley watch chat.txt`,
	SilenceUsage: true,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.parley.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, yaml, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("color", "auto", "color transcripts (auto, always, never)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output (same as --color never)")
	rootCmd.PersistentFlags().String("log-level", "warn", "diagnostic log level (debug, info, warn, error)")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".parley")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PARLEY")
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// app is the resolved configuration shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

// loadApp decodes the global viper state and builds the logger, which is
// also stored in the command context. Verbose raises the log level to debug.
func loadApp(cmd *cobra.Command) (*app, error) {
	config.SetDefaults(viper.GetViper())

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))

	return &app{cfg: cfg, logger: logger}, nil
}

// newWriter returns an output writer honoring --format, --color and --no-color.
func (a *app) newWriter(cmd *cobra.Command) *output.Writer {
	color, _ := cmd.Flags().GetString("color")
	mode := output.ParseColorMode(color)
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		mode = output.ColorNever
	}
	return output.New(cmd.OutOrStdout(), output.ParseFormat(a.cfg.Format)).WithColor(mode)
}

func (a *app) close() {
	_ = logging.Sync(a.logger)
}
