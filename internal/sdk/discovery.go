// Package sdk discovers framework bundles and metadata in a macOS SDK.
package sdk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const frameworkSuffix = ".framework"

// DiscoverFrameworks enumerates the framework bundles under
// root/frameworksDir and returns their names, suffix stripped and
// lexicographically sorted. Entries starting with an underscore are
// private and skipped, as are names matching any exclude glob.
func DiscoverFrameworks(root, frameworksDir string, exclude []string) ([]string, error) {
	dir := filepath.Join(root, frameworksDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frameworks directory %s: %w", dir, err)
	}

	frameworks := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "_") {
			continue
		}
		name = strings.TrimSuffix(name, frameworkSuffix)
		if matchesAny(name, exclude) {
			continue
		}
		frameworks = append(frameworks, name)
	}

	sort.Strings(frameworks)
	return frameworks, nil
}

// matchesAny reports whether name matches one of the doublestar patterns.
// Invalid patterns never match.
func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
