package main

import (
	"fmt"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/code-wave/internal/highlight"
)

var configStyles bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after the config file and --set overrides are
applied, followed by the free-form settings.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configStyles, "styles", false, "List the highlight styles instead")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if configStyles {
		for _, name := range highlight.StyleNames() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	timing := cfg.ChoreoTiming()
	rows := [][2]string{
		{"theme", cfg.Theme},
		{"highlight", cfg.Highlight},
		{"motion", cfg.Motion},
		{"log_file", cfg.LogFile},
		{"time_format", cfg.TimeFormat},
		{"fps", strconv.Itoa(cfg.FPS)},
		{"timing.remove_ms", strconv.FormatInt(timing.Remove.Milliseconds(), 10)},
		{"timing.move_ms", strconv.FormatInt(timing.Move.Milliseconds(), 10)},
		{"timing.insert_ms", strconv.FormatInt(timing.Insert.Milliseconds(), 10)},
		{"timing.stagger_ms", strconv.FormatInt(timing.Stagger.Milliseconds(), 10)},
		{"timing.dim_opacity", strconv.FormatFloat(timing.DimOpacity, 'g', -1, 64)},
		{"timing.slide_distance", strconv.FormatFloat(timing.SlideDistance, 'g', -1, 64)},
		{"interest.include_displaced", strconv.FormatBool(cfg.Interest.IncludeDisplaced)},
	}
	known := make(map[string]bool, len(rows))
	for _, r := range rows {
		known[r[0]] = true
	}

	all := cfg.GetAll()
	keys := make([]string, 0, len(all))
	for k := range all {
		if !known[k] {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		rows = append(rows, [2]string{k, all[k]})
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}
