/*
Copyright © 2026 The genframeworks authors
*/

// Package scan drives the compiler's dependency-scan mode and decodes its
// module graph.
package scan

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nixdarwin/genframeworks/pkg/logger"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/scan-output.schema.json
var scanOutputSchema []byte

var (
	compiledSchema *gojsonschema.Schema
	schemaOnce     sync.Once
	schemaErr      error
)

func scanSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(scanOutputSchema))
	})
	return compiledSchema, schemaErr
}

// ModuleIdentifier names a module by its Swift name or its Clang name.
// When both are present the Swift name takes precedence.
type ModuleIdentifier struct {
	Swift string `json:"swift,omitempty"`
	Clang string `json:"clang,omitempty"`
}

// Name resolves the identifier to a display name.
func (id ModuleIdentifier) Name() string {
	if id.Swift != "" {
		return id.Swift
	}
	return id.Clang
}

// moduleDetails is the metadata object that follows each identifier in
// the modules array.
type moduleDetails struct {
	DirectDependencies []ModuleIdentifier `json:"directDependencies"`
}

// moduleGraph is the top-level scan output. Modules stays raw because the
// array alternates identifier and metadata objects.
type moduleGraph struct {
	Modules []json.RawMessage `json:"modules"`
}

// ParseDirectDependencies decodes scan output and returns the direct
// dependency names reported for the given framework. Entries in the
// modules list come in pairs: an identifier at index 2k and metadata at
// 2k+1. A framework may match twice (Clang module and Swift overlay), so
// every matching pair contributes; duplicates are the caller's concern.
func ParseDirectDependencies(data []byte, framework string) ([]string, error) {
	schema, err := scanSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile scan output schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse scan output: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("scan output rejected by schema: %s", result.Errors()[0])
	}

	var graph moduleGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("failed to decode module graph: %w", err)
	}

	var deps []string
	for i := 0; i+1 < len(graph.Modules); i += 2 {
		var ident ModuleIdentifier
		if err := json.Unmarshal(graph.Modules[i], &ident); err != nil {
			return nil, fmt.Errorf("failed to decode module identifier at index %d: %w", i, err)
		}
		if ident.Name() != framework {
			continue
		}

		var details moduleDetails
		if err := json.Unmarshal(graph.Modules[i+1], &details); err != nil {
			return nil, fmt.Errorf("failed to decode module metadata at index %d: %w", i+1, err)
		}

		names := make([]string, 0, len(details.DirectDependencies))
		for _, dep := range details.DirectDependencies {
			names = append(names, dep.Name())
		}
		deps = append(deps, names...)
		// List unfiltered deps in progress output.
		logger.Debug("module match", logger.String("framework", framework), logger.String("deps", fmt.Sprintf("%v", names)))
	}
	return deps, nil
}

// Scanner scans frameworks one at a time through an Invoker.
type Scanner struct {
	invoker Invoker
}

// NewScanner creates a Scanner using the given invoker.
func NewScanner(invoker Invoker) *Scanner {
	return &Scanner{invoker: invoker}
}

// DirectDependencies returns the raw (unfiltered) direct dependency names
// of one framework. Every failure mode — invocation error, non-zero exit,
// empty or malformed output — degrades to an empty list so one broken
// framework never aborts a run.
func (s *Scanner) DirectDependencies(ctx context.Context, framework string) []string {
	logger.Info(fmt.Sprintf("scanning %s", framework))

	result, err := s.invoker.Scan(ctx, framework)
	if err != nil {
		logger.Warn(fmt.Sprintf("scanning %s failed", framework), logger.Err(err))
		return nil
	}
	if result.ExitCode != 0 {
		logger.Warn(fmt.Sprintf("scanning %s failed (exit code %d)", framework, result.ExitCode))
		return nil
	}
	if len(result.Stdout) == 0 {
		return nil
	}

	deps, err := ParseDirectDependencies(result.Stdout, framework)
	if err != nil {
		logger.Warn(fmt.Sprintf("scanning %s produced unusable output", framework), logger.Err(err))
		return nil
	}
	return deps
}
