package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ThatCatDev/llamalaunch/internal/config"
	"github.com/ThatCatDev/llamalaunch/internal/runner"
)

func newChatCmd(a *app) *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Run llama-server for chat",
		Long: "Start llama-server with the chat model and stream its output until it exits " +
			"or is interrupted. The launcher exits with the server's exit code.\n\n" +
			"Ctrl-C reaches the server through the terminal and is not relayed again. " +
			"To stop the server from a supervisor, send SIGTERM or SIGHUP to the launcher; " +
			"a SIGINT sent to the launcher process alone does not reach the server.",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.resolver(cmd, config.ServerEnv)
			if err != nil {
				return err
			}
			cfg, err := config.ResolveServer(r)
			if err != nil {
				return err
			}
			return a.launch(cmd, cfg, runner.ServerInvocation(cfg), banner{
				start: "Starting server",
				exit:  "Server exited with code",
			})
		},
	}

	config.RegisterServerFlags(chatCmd.Flags(), config.DefaultServer())
	addLaunchFlags(chatCmd)
	return chatCmd
}
