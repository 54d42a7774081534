/*
Copyright © 2026 The genframeworks authors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/nixdarwin/genframeworks/internal/ops"
	"github.com/nixdarwin/genframeworks/pkg/buildinfo"
	"github.com/nixdarwin/genframeworks/pkg/exitcode"
	"github.com/nixdarwin/genframeworks/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genframeworks",
		Short: "Generate a baseline frameworks.nix for a macOS SDK",
		Long: `Genframeworks derives the dependency declarations between an SDK's system
frameworks by driving swiftc's dependency-scanning mode, and renders them
as a Nix attribute set suitable as a frameworks.nix baseline.

Examples:
   genframeworks generate /path/to/MacOSX.sdk > frameworks.nix
   genframeworks list /path/to/MacOSX.sdk --bundle-info
   genframeworks doctor --sdk /path/to/MacOSX.sdk`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version using the binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("genframeworks {{.Version}}\n")

	// Grouped help by command group (Generate → Support)
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Generation Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupGenerate) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(generateCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(doctorCmd)
	cmd.AddCommand(initCmd)
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// usageError marks a wrong command-line shape; Execute maps it to
// EX_USAGE (64), the status callers of the original generator expect.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitError carries a specific process exit status with an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exactSDKArg enforces the single <sdk-path> positional argument.
func exactSDKArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &usageError{fmt.Errorf("expected exactly one <sdk-path> argument, got %d", len(args))}
	}
	return nil
}

// exitStatus maps a command error to the process exit status.
func exitStatus(err error) int {
	var uerr *usageError
	if errors.As(err, &uerr) {
		return exitcode.UsageError
	}
	var eerr *exitError
	if errors.As(err, &eerr) {
		return eerr.code
	}
	return exitcode.GeneralError
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitStatus(err))
	}
}

func init() {
	// Register all subcommands with the production rootCmd
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "genframeworks",
	}

	if err := logger.Initialize(config); err != nil {
		// Fallback to stderr
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
}
