/*
Copyright © 2026 The genframeworks authors
*/
package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nixdarwin/genframeworks/pkg/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSwiftcStub installs a fake swiftc that answers --version.
func writeSwiftcStub(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not portable to windows")
	}
	path := filepath.Join(t.TempDir(), "swiftc")
	script := "#!/bin/sh\necho 'Apple Swift version 6.0 (test stub)'\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755)) // #nosec G306 -- test stub must be executable
	return path
}

func TestDoctor(t *testing.T) {
	stub := writeSwiftcStub(t)

	out, err := execute(t, "doctor", "--swiftc", stub)
	require.NoError(t, err)
	assert.Contains(t, out, "compiler: "+stub)
	assert.Contains(t, out, "Apple Swift version 6.0")
}

func TestDoctorMissingCompiler(t *testing.T) {
	out, err := execute(t, "doctor", "--swiftc", filepath.Join(t.TempDir(), "no-swiftc"))
	require.Error(t, err)
	assert.Equal(t, exitcode.ToolNotFound, exitStatus(err))
	assert.Empty(t, out)
}

func TestDoctorWithSDK(t *testing.T) {
	stub := writeSwiftcStub(t)
	root := makeSDK(t, "Foo.framework", "Bar.framework")
	settings := `{"CanonicalName":"macosx15.0","DisplayName":"macOS 15.0","Version":"15.0"}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "SDKSettings.json"), []byte(settings), 0o644))

	out, err := execute(t, "doctor", "--swiftc", stub, "--sdk", root)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 frameworks)")
	assert.Contains(t, out, "macOS 15.0")
}

func TestDoctorWithSDKNoSettings(t *testing.T) {
	stub := writeSwiftcStub(t)
	root := makeSDK(t, "Foo.framework")

	// Missing SDKSettings.json is a warning, not a failure.
	out, err := execute(t, "doctor", "--swiftc", stub, "--sdk", root)
	require.NoError(t, err)
	assert.Contains(t, out, "(1 frameworks)")
}

func TestDoctorMissingSDKDir(t *testing.T) {
	stub := writeSwiftcStub(t)

	_, err := execute(t, "doctor", "--swiftc", stub, "--sdk", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, exitcode.FileSystemError, exitStatus(err))
}

func TestDoctorRejectsArgs(t *testing.T) {
	_, err := execute(t, "doctor", "extra")
	assert.Error(t, err)
}
