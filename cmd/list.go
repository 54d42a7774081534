/*
Copyright © 2026 The genframeworks authors
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/nixdarwin/genframeworks/internal/ops"
	"github.com/nixdarwin/genframeworks/internal/sdk"
	"github.com/nixdarwin/genframeworks/pkg/exitcode"
	"github.com/nixdarwin/genframeworks/pkg/logger"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <sdk-path>",
	Short: "List the frameworks discovered in an SDK",
	Long: `List performs only the discovery step: it prints the sorted framework
names that generate would scan, without invoking the compiler.

With --bundle-info each framework's Info.plist is read for its bundle
identifier and version; bundles without a readable plist are reported
with empty fields.`,
	Args: exactSDKArg,
	RunE: runList,
}

// frameworkEntry is the JSON shape for one discovered framework.
type frameworkEntry struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"`
	Version    string `json:"version,omitempty"`
}

func init() {
	if err := ops.RegisterCommand("list", ops.GroupGenerate, listCmd, "List discovered frameworks"); err != nil {
		panic(fmt.Sprintf("Failed to register list command: %v", err))
	}

	listCmd.Flags().String("frameworks-dir", "", "Frameworks directory relative to the SDK root")
	listCmd.Flags().StringSlice("exclude", nil, "Glob patterns for framework names to skip")
	listCmd.Flags().Bool("bundle-info", false, "Read each bundle's Info.plist for identifier and version")
	listCmd.Flags().Bool("json", false, "Output in JSON format")
}

func runList(cmd *cobra.Command, args []string) error {
	sdkRoot := args[0]

	cfg, err := generateSettings(cmd)
	if err != nil {
		return err
	}

	frameworks, err := sdk.DiscoverFrameworks(sdkRoot, cfg.FrameworksDir, cfg.Exclude)
	if err != nil {
		return &exitError{code: exitcode.FileSystemError, err: err}
	}

	bundleInfo, _ := cmd.Flags().GetBool("bundle-info")
	jsonFormat, _ := cmd.Flags().GetBool("json")

	entries := make([]frameworkEntry, 0, len(frameworks))
	for _, framework := range frameworks {
		entry := frameworkEntry{Name: framework}
		if bundleInfo {
			info, err := sdk.ReadBundleInfo(sdkRoot, cfg.FrameworksDir, framework)
			if err != nil {
				logger.Debug(fmt.Sprintf("no bundle info for %s", framework), logger.Err(err))
			} else {
				entry.Identifier = info.Identifier
				entry.Version = info.Version
			}
		}
		entries = append(entries, entry)
	}

	out := cmd.OutOrStdout()

	if jsonFormat {
		jsonData, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON output: %v", err)
		}
		_, err = fmt.Fprintln(out, string(jsonData))
		return err
	}

	for _, entry := range entries {
		if bundleInfo && entry.Identifier != "" {
			if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", entry.Name, entry.Identifier, entry.Version); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(out, entry.Name); err != nil {
			return err
		}
	}
	return nil
}
