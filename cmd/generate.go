/*
Copyright © 2026 The genframeworks authors
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nixdarwin/genframeworks/internal/baseline"
	"github.com/nixdarwin/genframeworks/internal/ops"
	"github.com/nixdarwin/genframeworks/internal/scan"
	"github.com/nixdarwin/genframeworks/internal/sdk"
	"github.com/nixdarwin/genframeworks/pkg/config"
	"github.com/nixdarwin/genframeworks/pkg/exitcode"
	"github.com/nixdarwin/genframeworks/pkg/logger"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <sdk-path>",
	Short: "Generate a baseline frameworks.nix for an SDK",
	Long: `Generate scans every framework bundle in the SDK with
swiftc -scan-dependencies (one blocking invocation per framework, in
sorted order) and writes the aggregated dependency declarations to
stdout as a Nix attribute set.

Frameworks whose scan fails are reported on stderr and rendered with an
empty attribute set; the run always completes and covers every
discovered framework.`,
	Args: exactSDKArg,
	RunE: runGenerate,
}

// newInvoker builds the compiler invoker; tests substitute a stub.
var newInvoker = func(swiftc, sdkRoot string) scan.Invoker {
	return scan.NewSwiftcInvoker(swiftc, sdkRoot)
}

func init() {
	if err := ops.RegisterCommand("generate", ops.GroupGenerate, generateCmd, "Generate a baseline frameworks.nix"); err != nil {
		panic(fmt.Sprintf("Failed to register generate command: %v", err))
	}

	generateCmd.Flags().String("swiftc", "", "Compiler binary to use (default from config, then 'swiftc')")
	generateCmd.Flags().String("frameworks-dir", "", "Frameworks directory relative to the SDK root")
	generateCmd.Flags().StringSlice("allow", nil, "Extra non-framework libraries allowed as dependencies")
	generateCmd.Flags().StringSlice("exclude", nil, "Glob patterns for framework names to skip")
	generateCmd.Flags().StringP("output", "o", "", "Write the document to a file instead of stdout")
}

// generateSettings resolves the effective configuration for one run:
// flags override the config file, which overrides built-in defaults.
func generateSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, &exitError{code: exitcode.ConfigError, err: err}
	}

	if swiftc, _ := cmd.Flags().GetString("swiftc"); swiftc != "" {
		cfg.Swiftc = swiftc
	}
	if dir, _ := cmd.Flags().GetString("frameworks-dir"); dir != "" {
		cfg.FrameworksDir = dir
	}
	if cmd.Flags().Changed("allow") {
		allow, _ := cmd.Flags().GetStringSlice("allow")
		cfg.AllowedLibs = allow
	}
	if cmd.Flags().Changed("exclude") {
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		cfg.Exclude = exclude
	}

	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sdkRoot := args[0]

	cfg, err := generateSettings(cmd)
	if err != nil {
		return err
	}

	frameworks, err := sdk.DiscoverFrameworks(sdkRoot, cfg.FrameworksDir, cfg.Exclude)
	if err != nil {
		return &exitError{code: exitcode.FileSystemError, err: err}
	}
	logger.Info(fmt.Sprintf("discovered %d frameworks in %s", len(frameworks), sdkRoot))

	out := cmd.OutOrStdout()
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		f, err := os.Create(outputPath) // #nosec G304 -- destination chosen by the operator
		if err != nil {
			return &exitError{code: exitcode.FileSystemError, err: fmt.Errorf("failed to create output file: %w", err)}
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logger.Warn("failed to close output file", logger.Err(cerr))
			}
		}()
		out = f
	}

	generator := &baseline.Generator{
		Scanner:     scan.NewScanner(newInvoker(cfg.Swiftc, sdkRoot)),
		AllowedLibs: cfg.AllowedLibs,
	}

	return generator.Generate(context.Background(), frameworks, out)
}
