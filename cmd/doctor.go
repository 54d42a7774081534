/*
Copyright © 2026 The genframeworks authors
*/
package cmd

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nixdarwin/genframeworks/internal/ops"
	"github.com/nixdarwin/genframeworks/internal/sdk"
	"github.com/nixdarwin/genframeworks/pkg/config"
	"github.com/nixdarwin/genframeworks/pkg/exitcode"
	"github.com/nixdarwin/genframeworks/pkg/logger"
	"github.com/spf13/cobra"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the scanning toolchain is usable",
	Long: `Doctor verifies that the configured compiler can be resolved and
reports its version. With --sdk it additionally checks that the SDK's
frameworks directory is readable and reports the SDK metadata from
SDKSettings.json when present.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	if err := ops.RegisterCommand("doctor", ops.GroupSupport, doctorCmd, "Check the scanning toolchain"); err != nil {
		panic(fmt.Sprintf("Failed to register doctor command: %v", err))
	}

	doctorCmd.Flags().String("swiftc", "", "Compiler binary to check (default from config, then 'swiftc')")
	doctorCmd.Flags().String("sdk", "", "SDK root to sanity check")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return &exitError{code: exitcode.ConfigError, err: err}
	}
	swiftc := cfg.Swiftc
	if flagSwiftc, _ := cmd.Flags().GetString("swiftc"); flagSwiftc != "" {
		swiftc = flagSwiftc
	}

	out := cmd.OutOrStdout()

	path, err := exec.LookPath(swiftc)
	if err != nil {
		return &exitError{
			code: exitcode.ToolNotFound,
			err:  fmt.Errorf("compiler %q not found: %w", swiftc, err),
		}
	}
	fmt.Fprintf(out, "compiler: %s\n", path)

	if version := compilerVersion(path); version != "" {
		fmt.Fprintf(out, "version:  %s\n", version)
	} else {
		logger.Warn("could not determine compiler version")
	}

	sdkRoot, _ := cmd.Flags().GetString("sdk")
	if sdkRoot == "" {
		return nil
	}

	frameworks, err := sdk.DiscoverFrameworks(sdkRoot, cfg.FrameworksDir, cfg.Exclude)
	if err != nil {
		return &exitError{code: exitcode.FileSystemError, err: err}
	}
	fmt.Fprintf(out, "sdk:      %s (%d frameworks)\n", sdkRoot, len(frameworks))

	info, err := sdk.ReadInfo(sdkRoot)
	if err != nil {
		logger.Warn("SDK metadata unavailable", logger.Err(err))
		return nil
	}
	fmt.Fprintf(out, "name:     %s (%s)\n", info.DisplayName, info.CanonicalName)
	return nil
}

// compilerVersion returns the first line of `<swiftc> --version`, or ""
// when the probe fails.
func compilerVersion(path string) string {
	// #nosec G204 -- path resolved via LookPath from operator config
	probe := exec.Command(path, "--version")
	var stdout bytes.Buffer
	probe.Stdout = &stdout
	if err := probe.Run(); err != nil {
		return ""
	}
	line, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(line)
}
