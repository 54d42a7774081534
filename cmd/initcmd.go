/*
Copyright © 2026 The genframeworks authors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/nixdarwin/genframeworks/internal/ops"
	"github.com/nixdarwin/genframeworks/pkg/config"
	"github.com/nixdarwin/genframeworks/pkg/exitcode"
	"github.com/spf13/cobra"
)

const configFileName = ".genframeworks.yaml"

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Init writes a commented ` + configFileName + ` with the built-in
defaults to the working directory. An existing file is left untouched
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	if err := ops.RegisterCommand("init", ops.GroupSupport, initCmd, "Write a default config file"); err != nil {
		panic(fmt.Sprintf("Failed to register init command: %v", err))
	}

	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(configFileName); err == nil && !force {
		return &exitError{
			code: exitcode.ConfigError,
			err:  fmt.Errorf("%s already exists (use --force to overwrite)", configFileName),
		}
	}

	data, err := config.DefaultYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFileName, data, 0o644); err != nil { // #nosec G306 -- config file is not sensitive
		return &exitError{code: exitcode.FileSystemError, err: fmt.Errorf("failed to write %s: %w", configFileName, err)}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configFileName)
	return nil
}
