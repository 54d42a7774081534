/*
Copyright © 2026 The genframeworks authors
*/

// Package baseline filters scanned dependency sets and renders the
// frameworks.nix document.
package baseline

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	header = "{ libs, frameworks }: with libs; with frameworks;\n{\n"
	footer = "}\n"
)

// AllowedSet builds the immutable filter set: every discovered framework
// plus the configured non-framework libraries.
func AllowedSet(frameworks, extraLibs []string) map[string]struct{} {
	allowed := make(map[string]struct{}, len(frameworks)+len(extraLibs))
	for _, name := range frameworks {
		allowed[name] = struct{}{}
	}
	for _, name := range extraLibs {
		allowed[name] = struct{}{}
	}
	return allowed
}

// Filter reduces a raw dependency list to the names that are separate
// derivations: members of the allowed set, minus the framework itself
// (a Swift overlay importing its own Clang module), deduplicated and
// sorted. Pure function of its inputs.
func Filter(framework string, rawDeps []string, allowed map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(rawDeps))
	deps := make([]string, 0, len(rawDeps))
	for _, dep := range rawDeps {
		if dep == framework {
			continue
		}
		if _, ok := allowed[dep]; !ok {
			continue
		}
		if _, ok := seen[dep]; ok {
			continue
		}
		seen[dep] = struct{}{}
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// RenderLine formats one framework's attribute line, name padded to the
// column width.
func RenderLine(framework string, deps []string, width int) string {
	padded := runewidth.FillRight(framework, width)
	if len(deps) == 0 {
		return fmt.Sprintf("  %s = {};\n", padded)
	}
	return fmt.Sprintf("  %s = { inherit %s; };\n", padded, strings.Join(deps, " "))
}

// ColumnWidth returns the display width of the longest name.
func ColumnWidth(frameworks []string) int {
	width := 0
	for _, name := range frameworks {
		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}
	return width
}

// DependencyScanner reports the raw direct dependencies of one framework.
type DependencyScanner interface {
	DirectDependencies(ctx context.Context, framework string) []string
}

// Generator produces the baseline document for a fixed framework set.
type Generator struct {
	Scanner DependencyScanner

	// AllowedLibs are non-framework names admitted by the filter.
	AllowedLibs []string
}

// Generate scans each framework in order and writes the complete
// document to w. Frameworks must already be sorted; scan failures have
// been absorbed by the scanner, so every framework gets a line.
func (g *Generator) Generate(ctx context.Context, frameworks []string, w io.Writer) error {
	allowed := AllowedSet(frameworks, g.AllowedLibs)
	width := ColumnWidth(frameworks)

	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	for _, framework := range frameworks {
		deps := Filter(framework, g.Scanner.DirectDependencies(ctx, framework), allowed)
		if _, err := io.WriteString(w, RenderLine(framework, deps, width)); err != nil {
			return fmt.Errorf("failed to write baseline: %w", err)
		}
	}
	if _, err := io.WriteString(w, footer); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	return nil
}
