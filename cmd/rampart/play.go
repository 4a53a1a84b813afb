package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/rampart"
	"github.com/spf13/cobra"
)

func newPlayCmd(a *app) *cobra.Command {
	var scriptPath string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open a window and run the layout",
		Long: `Play composes a scene around the layout manifest and runs it in a window
until the window closes. With --script the lifecycle script is stepped once
per frame and a quit step closes the window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, _, err := a.buildScene()
			if err != nil {
				return err
			}
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("failed to read script: %w", err)
				}
				runner, err := rampart.LoadScript(data)
				if err != nil {
					return err
				}
				scene.SetScriptRunner(runner)
			}
			return rampart.Run(scene, a.cfg.RunConfig())
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "lifecycle script (JSON) to step each frame")
	return cmd
}
