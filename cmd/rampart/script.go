package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/rampart"
	"github.com/spf13/cobra"
)

func newScriptCmd(a *app) *cobra.Command {
	var (
		maxFrames int
		tps       int
	)
	cmd := &cobra.Command{
		Use:   "script <script.json>",
		Short: "Drive the layout headless from a lifecycle script",
		Long: `Script composes a scene around the layout manifest, steps the lifecycle
script once per frame without opening a window, and prints the final state
of every service and view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tps <= 0 {
				return fmt.Errorf("--tps must be positive")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}
			runner, err := rampart.LoadScript(data)
			if err != nil {
				return err
			}
			scene, ui, err := a.buildScene()
			if err != nil {
				return err
			}
			frames := rampart.RunHeadless(scene, runner, 1.0/float64(tps), maxFrames)
			fmt.Fprint(cmd.OutOrStdout(), renderReport(scene, ui, frames, runner.Done()))
			scene.Deinitialize()
			return nil
		},
	}
	cmd.Flags().IntVar(&maxFrames, "max-frames", 10000, "stop after this many frames")
	cmd.Flags().IntVar(&tps, "tps", 60, "simulated ticks per second")
	return cmd
}
