package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"pexelsdl/pkg/auth"
	"pexelsdl/pkg/logger"
	"pexelsdl/pkg/pexels"
	"pexelsdl/pkg/ui"
)

func newAuthCmd(opts *globalOptions) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect the Pexels API key",
		Long: `Inspect the Pexels API key pexelsdl is configured to use.

The key is read from one of:
  - an api.key file in the working directory (default)
  - the PEXELSDL_API_KEY environment variable or a .env file
  - the system keyring

pexelsdl only reads keys; store them with your own tools.`,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the API key is accepted",
		Long: `Send a single one-result search for "test" and report whether the
Pexels API accepts the configured key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthCheck(cmd, opts)
		},
	}

	guideCmd := &cobra.Command{
		Use:   "guide",
		Short: "Explain how to obtain and provide an API key",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			auth.ShowKeySetupGuide(cmd.OutOrStdout())
		},
	}

	authCmd.AddCommand(checkCmd, guideCmd)
	return authCmd
}

func runAuthCheck(cmd *cobra.Command, opts *globalOptions) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	key, err := loadKey(cfg)
	if err != nil {
		return err
	}
	ui.PrintInfo("Key", key.Masked()+" (from "+cfg.Pexels.KeySource+")")

	client := pexels.NewClient(key, pexels.Options{
		BaseURL:   cfg.Pexels.BaseURL,
		UserAgent: cfg.Pexels.UserAgent,
		Referer:   cfg.Pexels.Referer,
		Timeout:   cfg.Pexels.Timeout,
	}, logger.GetLogger())

	result, err := client.Search("test", 1)
	if err != nil {
		for _, line := range searchDiagnostics(err) {
			ui.PrintError(line)
		}
		return errReported
	}

	ui.PrintSuccess("API Key is working correctly!")
	ui.PrintInfo("Total results", strconv.Itoa(result.TotalResults))
	return nil
}
