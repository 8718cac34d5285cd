package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pstuifzand/code-wave/internal/app"
	"github.com/pstuifzand/code-wave/internal/choreo"
	"github.com/pstuifzand/code-wave/internal/history"
	"github.com/pstuifzand/code-wave/internal/model"
	"github.com/pstuifzand/code-wave/internal/socket"
	"github.com/pstuifzand/code-wave/internal/theme"
)

var (
	startStep int
	noSocket  bool
	watchDeck bool
)

var playCmd = &cobra.Command{
	Use:   "play <deck.md>",
	Short: "Open the player on a deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

var stepCmd = &cobra.Command{
	Use:   "step <index|next|prev>",
	Short: "Move a running player to another step",
	Long: `Sends a step change to the most recently started player.
Indices count from 0.`,
	Args: cobra.ExactArgs(1),
	RunE: runStep,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the step of a running player",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().IntVar(&startStep, "start", 0, "Block to open on, counting from 0")
		c.Flags().BoolVar(&noSocket, "no-socket", false, "Do not accept step commands from other processes")
		c.Flags().BoolVarP(&watchDeck, "watch", "w", false, "Reload the deck when the file changes")
	}
	rootCmd.AddCommand(playCmd, stepCmd, statusCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	deck, err := loadDeck(args[0])
	if err != nil {
		return err
	}
	motion, err := choreo.MotionByName(cfg.Motion)
	if err != nil {
		return err
	}

	manager, err := history.NewManager()
	if err != nil {
		logger.Warn("search history disabled", zap.Error(err))
		manager = nil
	}

	application, err := app.NewApp(app.Options{
		Deck:    deck,
		Path:    args[0],
		Config:  cfg,
		Theme:   theme.LoadThemeOrDefault(cfg.Theme),
		Logger:  logger,
		Start:   startStep,
		Motion:  motion,
		History: manager,
		Socket:  !noSocket,
		Reload:  func() (*model.Deck, error) { return loadDeck(args[0]) },
		Watch:   watchDeck,
	})
	if err != nil {
		return err
	}

	logger.Info("player started", zap.String("deck", args[0]), zap.Int("blocks", deck.Len()), zap.String("motion", motion.Name()))
	if err := application.Run(); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}

func connect() (*socket.Client, error) {
	path, pid, err := socket.FindRunningInstance()
	if err != nil {
		return nil, err
	}
	logger.Debug("found player", zap.Int("pid", pid), zap.String("socket", path))
	return socket.NewClient(path)
}

func runStep(cmd *cobra.Command, args []string) error {
	client, err := connect()
	if err != nil {
		return err
	}

	var resp *socket.Response
	switch args[0] {
	case "next":
		resp, err = client.Next()
	case "prev":
		resp, err = client.Prev()
	default:
		var i int
		if _, scanErr := fmt.Sscanf(args[0], "%d", &i); scanErr != nil {
			return fmt.Errorf("invalid step %q, want an index, next or prev", args[0])
		}
		resp, err = client.Step(i)
	}
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return printResponse(cmd, resp)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := connect()
	if err != nil {
		return err
	}
	resp, err := client.Status()
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return printResponse(cmd, resp)
}

func printResponse(cmd *cobra.Command, resp *socket.Response) error {
	if !resp.Success {
		return fmt.Errorf("player refused: %s", resp.Message)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "block %d of 0..%d", resp.Current, resp.Count-1)
	if resp.Target != resp.Current {
		fmt.Fprintf(out, ", moving to %d", resp.Target)
	}
	if resp.Title != "" {
		fmt.Fprintf(out, " (%s)", resp.Title)
	}
	fmt.Fprintln(out)
	return nil
}
