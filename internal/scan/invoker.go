/*
Copyright © 2026 The genframeworks authors
*/
package scan

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Result holds the output of one dependency-scan invocation.
type Result struct {
	// ExitCode from the compiler
	ExitCode int

	// Stdout contains the scan JSON (when the scan succeeded)
	Stdout []byte

	// Stderr contains compiler diagnostics
	Stderr []byte
}

// Invoker runs the compiler's dependency-scan mode for one framework.
type Invoker interface {
	Scan(ctx context.Context, framework string) (*Result, error)
}

// SwiftcInvoker drives swiftc -scan-dependencies against a fixed SDK.
//
// Swift is used for scanning because a framework may have both Clang and
// Swift parts. Importing through Swift usually pulls in the Clang module
// plus the Swift overlay, while Clang alone would import only the Clang
// module.
//
// TODO: The above is an assumption. Not sure if it's possible a Swift
// module completely shadows a Clang module. (Seems unlikely)
//
// TODO: Handle "module 'Foobar' is incompatible with feature 'swift'"
//
// If there were a similar Clang invocation for scanning, we could fix the
// above todos, but that doesn't appear to exist.
type SwiftcInvoker struct {
	// Swiftc is the compiler binary, resolved via PATH when not absolute.
	Swiftc string

	// SDK is the SDK root passed to every invocation.
	SDK string
}

// NewSwiftcInvoker creates a SwiftcInvoker for the given compiler and SDK root.
func NewSwiftcInvoker(swiftc, sdkRoot string) *SwiftcInvoker {
	return &SwiftcInvoker{Swiftc: swiftc, SDK: sdkRoot}
}

// Scan runs one blocking swiftc -scan-dependencies invocation with a
// one-line import of the framework on stdin.
func (i *SwiftcInvoker) Scan(ctx context.Context, framework string) (*Result, error) {
	swiftLibDir := filepath.Join(i.SDK, "usr", "lib", "swift")
	args := []string{
		"-scan-dependencies",
		// We provide a source snippet via stdin.
		"-",
		// Use the provided SDK.
		"-sdk", i.SDK,
		// This search path is normally added automatically by the
		// compiler based on the SDK, but a patch removes that for SDKs
		// in /nix/store, because the xcbuild stub SDK doesn't have the
		// directory. (swift-prevent-sdk-dirs-warning.patch)
		"-I", swiftLibDir,
		// For some reason, 'lib/swift/shims' from both the SDK and the
		// Swift compiler are picked up, causing redefinition errors.
		// This eliminates the latter.
		"-resource-dir", swiftLibDir,
	}

	// #nosec G204 -- compiler binary and SDK come from operator config
	cmd := exec.CommandContext(ctx, i.Swiftc, args...)
	cmd.Stdin = strings.NewReader("import " + framework)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			// Non-zero exit is a reportable skip, not an error; the
			// caller checks ExitCode.
			return result, nil
		}
		return nil, fmt.Errorf("failed to execute %s: %w", i.Swiftc, err)
	}

	return result, nil
}
