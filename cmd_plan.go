package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/ncruces/go-strftime"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pstuifzand/code-wave/internal/choreo"
	"github.com/pstuifzand/code-wave/internal/export"
	"github.com/pstuifzand/code-wave/internal/storage"
	"github.com/pstuifzand/code-wave/internal/viewport"
)

var (
	planFormat string
	planDump   bool

	fitWidth  float64
	fitHeight float64
	fitFormat string

	annotateWrite       bool
	annotateBackupDir   string
	annotateListBackups bool
)

var planCmd = &cobra.Command{
	Use:   "plan <deck> <from> <to>",
	Short: "Print the transition plan between two blocks",
	Long: `Plans the transition from block <from> to block <to> the way the player
would and prints every line's animation. Indices count from 0.`,
	Args: cobra.ExactArgs(3),
	RunE: runPlan,
}

var fitCmd = &cobra.Command{
	Use:   "fit <deck> <index>",
	Short: "Print how a block is framed in a container",
	Args:  cobra.ExactArgs(2),
	RunE:  runFit,
}

var annotateCmd = &cobra.Command{
	Use:   "annotate <deck.md>",
	Short: "Write a deck back with its interest ranges in the fence info",
	Long: `Prints the deck as Markdown with each fence's computed interest set
spelled out as {a,b-c}. With --write the deck file is replaced, after a
backup copy is made. --list-backups shows the copies made so far.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	planCmd.Flags().StringVarP(&planFormat, "format", "f", export.FormatText, "Output format: text, json or yaml")
	planCmd.Flags().BoolVar(&planDump, "dump", false, "Dump the raw plan structure")

	fitCmd.Flags().Float64Var(&fitWidth, "width", 80, "Container width")
	fitCmd.Flags().Float64Var(&fitHeight, "height", 24, "Container height")
	fitCmd.Flags().StringVarP(&fitFormat, "format", "f", export.FormatText, "Output format: text or json")

	annotateCmd.Flags().BoolVarP(&annotateWrite, "write", "w", false, "Replace the deck file")
	annotateCmd.Flags().StringVar(&annotateBackupDir, "backup-dir", "", "Backup directory (default ~/.local/share/code-wave/backups)")
	annotateCmd.Flags().BoolVar(&annotateListBackups, "list-backups", false, "List the backups of the deck instead")

	rootCmd.AddCommand(planCmd, fitCmd, annotateCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	deck, err := loadDeck(args[0])
	if err != nil {
		return err
	}
	from, err := blockIndex(deck, args[1])
	if err != nil {
		return err
	}
	to, err := blockIndex(deck, args[2])
	if err != nil {
		return err
	}
	motion, err := choreo.MotionByName(cfg.Motion)
	if err != nil {
		return err
	}

	plan := choreo.NewPlanner(cfg.ChoreoTiming(), motion).Plan(deck.Block(from), deck.Block(to))
	if planDump {
		spew.Fdump(cmd.OutOrStdout(), plan)
		return nil
	}
	return export.WritePlan(cmd.OutOrStdout(), plan, strings.ToLower(planFormat))
}

type fitResult struct {
	Block     int                `json:"block"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Lines     int                `json:"lines"`
	Interest  []int              `json:"interest"`
	Transform viewport.Transform `json:"transform"`
}

func runFit(cmd *cobra.Command, args []string) error {
	deck, err := loadDeck(args[0])
	if err != nil {
		return err
	}
	i, err := blockIndex(deck, args[1])
	if err != nil {
		return err
	}
	if fitWidth <= 0 || fitHeight <= 0 {
		return fmt.Errorf("container size must be positive, got %gx%g", fitWidth, fitHeight)
	}

	block := deck.Block(i)
	m := viewport.Measure(block)
	res := fitResult{
		Block:     i,
		Width:     m.Width,
		Height:    m.Height,
		Lines:     m.LineCount,
		Interest:  block.Interest.Indices(),
		Transform: viewport.Fit(m, block.Interest, fitWidth, fitHeight),
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(fitFormat) {
	case export.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case export.FormatText, "":
		fmt.Fprintf(out, "block %d: %gx%g cells, %d lines, interest %s\n",
			res.Block, res.Width, res.Height, res.Lines, export.FormatRanges(res.Interest))
		fmt.Fprintf(out, "scale %.4f translate %.2f,%.2f\n",
			res.Transform.Scale, res.Transform.TranslateX, res.Transform.TranslateY)
		return nil
	default:
		return fmt.Errorf("unknown fit format %q", fitFormat)
	}
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if annotateListBackups {
		return listBackups(cmd, path)
	}

	deck, err := loadDeck(path)
	if err != nil {
		return err
	}

	if !annotateWrite {
		return export.WriteMarkdown(cmd.OutOrStdout(), deck)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return fmt.Errorf("annotate --write needs a Markdown deck, got %s", path)
	}
	backups, err := storage.NewBackupManager(annotateBackupDir)
	if err != nil {
		return err
	}
	backup, err := backups.CreateBackup(path)
	if err != nil {
		return err
	}
	logger.Info("deck backed up", zap.String("backup", backup))

	if err := export.ExportToMarkdown(deck, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "annotated %s (backup %s)\n", path, backup)
	return nil
}

// listBackups prints the backups of path, oldest first, with times in the
// configured strftime layout
func listBackups(cmd *cobra.Command, path string) error {
	backups, err := storage.NewBackupManager(annotateBackupDir)
	if err != nil {
		return err
	}
	found, err := backups.FindBackupsForFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(found) == 0 {
		fmt.Fprintf(out, "no backups of %s\n", filepath.Base(path))
		return nil
	}
	for _, b := range found {
		fmt.Fprintf(out, "%s  %s\n", strftime.Format(cfg.TimeFormat, b.Timestamp), b.FilePath)
	}
	return nil
}
