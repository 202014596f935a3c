package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ThatCatDev/llamalaunch/internal/config"
	"github.com/ThatCatDev/llamalaunch/internal/runner"
)

func newWatchGPUCmd(a *app) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch-gpu",
		Short: "Refresh nvidia-smi every second",
		Long: "Run nvidia-smi under watch until it is interrupted. Ctrl-C reaches watch " +
			"through the terminal; a supervisor should send SIGTERM to the launcher instead.",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.resolver(cmd, config.WatchEnv)
			if err != nil {
				return err
			}
			cfg, err := config.ResolveWatch(r)
			if err != nil {
				return err
			}
			return a.launch(cmd, cfg, runner.WatchInvocation(cfg), banner{
				start: "Running",
				exit:  "Watch exited with code",
			})
		},
	}

	config.RegisterWatchFlags(watchCmd.Flags(), config.DefaultWatch())
	addLaunchFlags(watchCmd)
	return watchCmd
}
