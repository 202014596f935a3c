package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ThatCatDev/llamalaunch/internal/config"
	"github.com/ThatCatDev/llamalaunch/internal/runner"
)

// banner holds the lines a stream-mode launcher prints around its child.
type banner struct {
	start string
	exit  string
}

// addLaunchFlags adds the flags every launcher shares.
func addLaunchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "print the command that would run and exit")
	cmd.Flags().Bool("show-config", false, "print the resolved configuration as YAML and exit")

	for _, group := range config.ExclusiveFlags {
		if hasFlags(cmd, group) {
			cmd.MarkFlagsMutuallyExclusive(group...)
		}
	}
}

func hasFlags(cmd *cobra.Command, names []string) bool {
	for _, name := range names {
		if cmd.Flags().Lookup(name) == nil {
			return false
		}
	}
	return true
}

func (a *app) resolver(cmd *cobra.Command, env map[string]string) (*config.Resolver, error) {
	return config.NewResolver(cmd.Name(), cmd.Flags(), env, a.configFile)
}

// launch prints or runs inv. cfg is the resolved configuration behind it.
func (a *app) launch(cmd *cobra.Command, cfg any, inv runner.Invocation, b banner) error {
	out := cmd.OutOrStdout()
	a.logger.Debug("resolved launch config", zap.String("launcher", cmd.Name()), zap.Any("config", cfg))

	if show, _ := cmd.Flags().GetBool("show-config"); show {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return &runner.UnexpectedError{Op: "render config", Err: err}
		}
		_, err = out.Write(data)
		return err
	}
	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		fmt.Fprintln(out, inv.String())
		return nil
	}

	if err := runner.ValidateFiles(inv.Files); err != nil {
		return err
	}

	if inv.Mode == runner.Stream {
		fmt.Fprintf(out, "%s: %s\n", b.start, inv)
	}

	res, err := runner.New(a.logger, a.streams).Run(inv)

	if inv.Mode == runner.Capture {
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res.Stdout)
		return nil
	}

	var status *runner.ExitStatusError
	if err != nil && !errors.As(err, &status) {
		return err
	}
	fmt.Fprintf(out, "\n%s: %d\n", b.exit, res.ExitCode)
	return err
}
