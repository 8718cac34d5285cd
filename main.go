package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pstuifzand/code-wave/internal/config"
	"github.com/pstuifzand/code-wave/internal/highlight"
	"github.com/pstuifzand/code-wave/internal/interest"
	"github.com/pstuifzand/code-wave/internal/model"
	"github.com/pstuifzand/code-wave/internal/storage"
)

var (
	verbose    bool
	configPath string
	settings   []string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "codewave [deck.md]",
	Short: "Play a sequence of code blocks as animated transitions",
	Long: `codewave steps through the fenced code blocks of a Markdown deck.
Between steps, deleted lines slide out, surviving lines move to their new
rows and inserted lines slide in. The lines new to each step stay in focus.

Run with a deck to start the player; "codewave play" is the same.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPlay,
}

func init() {
	// Assigned here because setup refers back to rootCmd
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/code-wave/config.toml)")
	rootCmd.PersistentFlags().StringArrayVar(&settings, "set", nil, "Override a setting for this run (key=value)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger. The player owns the
// terminal, so it logs to a file; other commands log warnings to stderr.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = loadConfig(configPath, settings)
	if err != nil {
		return err
	}

	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch {
	case verbose:
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case !isPlayer(cmd):
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	if isPlayer(cmd) {
		zc.OutputPaths = []string{cfg.LogFile}
		zc.ErrorOutputPaths = []string{cfg.LogFile}
	}

	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func isPlayer(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == playCmd
}

// loadConfig reads the config file and applies key=value session overrides
func loadConfig(path string, overrides []string) (*config.Config, error) {
	var c *config.Config
	var err error
	if path != "" {
		c, err = config.LoadFromFile(path)
	} else {
		c, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", kv)
		}
		c.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	eff, err := c.Effective()
	if err != nil {
		return nil, err
	}
	if style := eff.Highlight; style != "" && style != "none" && !slices.Contains(highlight.StyleNames(), style) {
		return nil, fmt.Errorf("unknown highlight style %q, see \"codewave config --styles\"", style)
	}
	return eff, nil
}

// loadDeck reads a deck and attaches interest sets to its blocks
func loadDeck(path string) (*model.Deck, error) {
	deck, err := storage.Load(path)
	if err != nil {
		return nil, err
	}

	var opts []interest.Option
	if cfg != nil && cfg.Interest.IncludeDisplaced {
		opts = append(opts, interest.IncludeDisplaced())
	}
	interest.Annotate(deck, opts...)

	if logger != nil {
		logger.Debug("deck loaded", zap.String("path", path), zap.Int("blocks", deck.Len()))
	}
	return deck, nil
}

// blockIndex parses a zero-based block index and checks it against deck
func blockIndex(deck *model.Deck, s string) (int, error) {
	var i int
	if _, err := fmt.Sscanf(s, "%d", &i); err != nil || fmt.Sprint(i) != strings.TrimSpace(s) {
		return 0, fmt.Errorf("invalid block index %q", s)
	}
	if i < 0 || i >= deck.Len() {
		return 0, fmt.Errorf("block index %d out of range 0..%d", i, deck.Len()-1)
	}
	return i, nil
}
