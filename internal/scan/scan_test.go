/*
Copyright © 2026 The genframeworks authors
*/
package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureGraph = `{
  "mainModuleName": "main",
  "modules": [
    {"swift": "main"},
    {"directDependencies": [{"swift": "Foundation"}]},
    {"clang": "Foundation"},
    {"directDependencies": [{"clang": "CoreFoundation"}, {"clang": "ObjectiveC"}]},
    {"swift": "Foundation"},
    {"directDependencies": [{"clang": "Foundation"}, {"swift": "Dispatch"}, {"clang": "_Builtin_stddef"}]}
  ]
}`

func TestParseDirectDependencies(t *testing.T) {
	deps, err := ParseDirectDependencies([]byte(fixtureGraph), "Foundation")
	require.NoError(t, err)

	// Both the Clang module and the Swift overlay match, and both
	// contribute. Raw output is unfiltered and may repeat names.
	assert.Equal(t, []string{"CoreFoundation", "ObjectiveC", "Foundation", "Dispatch", "_Builtin_stddef"}, deps)
}

func TestParseDirectDependenciesNoMatch(t *testing.T) {
	deps, err := ParseDirectDependencies([]byte(fixtureGraph), "AppKit")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestParseDirectDependenciesSwiftPrecedence(t *testing.T) {
	// An identifier carrying both names resolves to the Swift name.
	graph := `{"modules": [
	  {"swift": "Metal", "clang": "MetalC"},
	  {"directDependencies": [{"swift": "Dispatch", "clang": "dispatch"}]}
	]}`

	deps, err := ParseDirectDependencies([]byte(graph), "Metal")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dispatch"}, deps)

	deps, err = ParseDirectDependencies([]byte(graph), "MetalC")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestParseDirectDependenciesOddTrailingEntry(t *testing.T) {
	// A dangling identifier without metadata is ignored.
	graph := `{"modules": [{"swift": "Foo"}]}`

	deps, err := ParseDirectDependencies([]byte(graph), "Foo")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestParseDirectDependenciesMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `scanning crashed`,
		"not an object":     `[1, 2, 3]`,
		"missing modules":   `{"mainModuleName": "main"}`,
		"modules not array": `{"modules": {"swift": "Foo"}}`,
		"non-object entry":  `{"modules": ["Foo", {"directDependencies": []}]}`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDirectDependencies([]byte(input), "Foo")
			assert.Error(t, err)
		})
	}
}

// stubInvoker fakes compiler runs per framework.
type stubInvoker struct {
	results map[string]*Result
	err     error
	calls   []string
}

func (s *stubInvoker) Scan(_ context.Context, framework string) (*Result, error) {
	s.calls = append(s.calls, framework)
	if s.err != nil {
		return nil, s.err
	}
	if r, ok := s.results[framework]; ok {
		return r, nil
	}
	return &Result{}, nil
}

func TestScannerDirectDependencies(t *testing.T) {
	inv := &stubInvoker{results: map[string]*Result{
		"Foundation": {Stdout: []byte(fixtureGraph)},
	}}
	s := NewScanner(inv)

	deps := s.DirectDependencies(context.Background(), "Foundation")
	assert.Contains(t, deps, "CoreFoundation")
	assert.Contains(t, deps, "Dispatch")
	assert.Equal(t, []string{"Foundation"}, inv.calls)
}

func TestScannerNonZeroExitDegrades(t *testing.T) {
	inv := &stubInvoker{results: map[string]*Result{
		"Broken": {ExitCode: 1, Stderr: []byte("error: no such module")},
	}}
	s := NewScanner(inv)

	assert.Empty(t, s.DirectDependencies(context.Background(), "Broken"))
}

func TestScannerEmptyOutputDegrades(t *testing.T) {
	s := NewScanner(&stubInvoker{})
	assert.Empty(t, s.DirectDependencies(context.Background(), "Silent"))
}

func TestScannerInvokerErrorDegrades(t *testing.T) {
	s := NewScanner(&stubInvoker{err: errors.New("swiftc not found")})
	assert.Empty(t, s.DirectDependencies(context.Background(), "Foundation"))
}

func TestScannerMalformedOutputDegrades(t *testing.T) {
	inv := &stubInvoker{results: map[string]*Result{
		"Garbled": {Stdout: []byte("not json at all")},
	}}
	s := NewScanner(inv)

	assert.Empty(t, s.DirectDependencies(context.Background(), "Garbled"))
}
