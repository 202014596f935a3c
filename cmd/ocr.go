package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ThatCatDev/llamalaunch/internal/config"
	"github.com/ThatCatDev/llamalaunch/internal/prompts"
	"github.com/ThatCatDev/llamalaunch/internal/runner"
)

// ocrTask describes one statement-extraction launcher.
type ocrTask struct {
	name      string
	short     string
	promptEnv string
	nPredict  int
	prompt    func() string
}

var (
	metadataTask = ocrTask{
		name:      "ocr-meta",
		short:     "Extract metadata from a bank statement image",
		promptEnv: "METADATA_PROMPT",
		nPredict:  1024,
		prompt:    prompts.Metadata,
	}
	transactionsTask = ocrTask{
		name:      "ocr-tx",
		short:     "Extract transactions from a bank statement image",
		promptEnv: "TRANSACTIONS_PROMPT",
		nPredict:  2048,
		prompt:    prompts.Transactions,
	}
)

func newOCRCmd(a *app, task ocrTask) *cobra.Command {
	env := config.VisionEnv(task.promptEnv)

	ocrCmd := &cobra.Command{
		Use:   task.name,
		Short: task.short,
		Long: task.short + ". The model output is captured and printed to stdout once " +
			"the CLI finishes; on failure its stderr and stdout go to stderr.",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.resolver(cmd, env)
			if err != nil {
				return err
			}
			cfg, err := config.ResolveVision(r, task.prompt())
			if err != nil {
				return err
			}
			return a.launch(cmd, cfg, runner.VisionInvocation(cfg), banner{})
		},
	}

	defaults := config.DefaultVision()
	defaults.NPredict = task.nPredict
	config.RegisterVisionFlags(ocrCmd.Flags(), defaults)
	addLaunchFlags(ocrCmd)
	return ocrCmd
}
