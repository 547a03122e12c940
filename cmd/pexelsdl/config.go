package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"pexelsdl/pkg/config"
	"pexelsdl/pkg/ui"
)

const defaultConfigPath = ".pexelsdl.yaml"

func newConfigCmd(opts *globalOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
		Long: `Manage pexelsdl configuration files.

Configuration is merged from, highest priority first:
  - Command line flags
  - Environment variables (PEXELSDL_*)
  - .env files (./.env, ~/.pexelsdl.env)
  - Configuration file
  - Default values`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Long: `Write a configuration file holding every option at its default value.

The file is created as ./.pexelsdl.yaml unless --config names another path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, opts, force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long: `Load the configuration from every source and check it for invalid values.

This command checks:
  - YAML syntax
  - Key source and key file settings
  - Archive directory and metadata format
  - Log level and timeout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(cmd, opts)
		},
	}

	configCmd.AddCommand(initCmd, showCmd, validateCmd)
	return configCmd
}

func runConfigInit(cmd *cobra.Command, opts *globalOptions, force bool) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	path := opts.configFile
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); err == nil && !force {
		ui.PrintError("Configuration file already exists", path)
		ui.Println("Use --force to overwrite it.")
		return errReported
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		ui.PrintError("Failed to write configuration", err)
		return errReported
	}

	ui.PrintSuccess(fmt.Sprintf("Configuration written to %s", path))
	return nil
}

func runConfigShow(cmd *cobra.Command, opts *globalOptions) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		ui.PrintError("Failed to render configuration", err)
		return errReported
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, opts *globalOptions) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := config.Load(opts.configFile, opts.flagMap(cmd))
	if err != nil {
		ui.PrintError("Configuration is invalid", err)
		return errReported
	}

	ui.PrintSuccess("Configuration is valid")
	ui.PrintInfo("Key source", cfg.Pexels.KeySource)
	ui.PrintInfo("Archive directory", cfg.Output.ArchiveDirectory)
	return nil
}
