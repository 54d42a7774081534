package sdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureInfoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>com.apple.Foundation</string>
	<key>CFBundleShortVersionString</key>
	<string>6.9</string>
	<key>CFBundleVersion</key>
	<string>2503</string>
</dict>
</plist>
`

func TestReadInfo(t *testing.T) {
	root := t.TempDir()
	settings := `{"CanonicalName":"macosx15.0","DisplayName":"macOS 15.0","Version":"15.0"}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "SDKSettings.json"), []byte(settings), 0o644))

	info, err := ReadInfo(root)
	require.NoError(t, err)
	assert.Equal(t, "macosx15.0", info.CanonicalName)
	assert.Equal(t, "macOS 15.0", info.DisplayName)
	assert.Equal(t, "15.0", info.Version)
}

func TestReadInfoMissing(t *testing.T) {
	_, err := ReadInfo(t.TempDir())
	assert.Error(t, err)
}

func TestReadBundleInfo(t *testing.T) {
	root := makeSDK(t, "Foundation.framework")
	resources := filepath.Join(root, testFrameworksDir, "Foundation.framework", "Resources")
	require.NoError(t, os.MkdirAll(resources, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(resources, "Info.plist"), []byte(fixtureInfoPlist), 0o644))

	info, err := ReadBundleInfo(root, testFrameworksDir, "Foundation")
	require.NoError(t, err)
	assert.Equal(t, "com.apple.Foundation", info.Identifier)
	assert.Equal(t, "6.9", info.Version)
}

func TestReadBundleInfoVersionedLayout(t *testing.T) {
	root := makeSDK(t, "AppKit.framework")
	resources := filepath.Join(root, testFrameworksDir, "AppKit.framework", "Versions", "Current", "Resources")
	require.NoError(t, os.MkdirAll(resources, 0o755))

	// Only CFBundleVersion present; it backfills Version.
	plist := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>com.apple.AppKit</string>
	<key>CFBundleVersion</key>
	<string>2503</string>
</dict>
</plist>
`
	require.NoError(t, os.WriteFile(filepath.Join(resources, "Info.plist"), []byte(plist), 0o644))

	info, err := ReadBundleInfo(root, testFrameworksDir, "AppKit")
	require.NoError(t, err)
	assert.Equal(t, "com.apple.AppKit", info.Identifier)
	assert.Equal(t, "2503", info.Version)
}

func TestReadBundleInfoMissingPlist(t *testing.T) {
	root := makeSDK(t, "Bare.framework")

	_, err := ReadBundleInfo(root, testFrameworksDir, "Bare")
	assert.Error(t, err)
}

func TestReadBundleInfoMalformedPlist(t *testing.T) {
	root := makeSDK(t, "Broken.framework")
	resources := filepath.Join(root, testFrameworksDir, "Broken.framework", "Resources")
	require.NoError(t, os.MkdirAll(resources, 0o755))
	// Binary plists fail the XML parse the same way.
	require.NoError(t, os.WriteFile(filepath.Join(resources, "Info.plist"), []byte("bplist00\x00\x01"), 0o644))

	_, err := ReadBundleInfo(root, testFrameworksDir, "Broken")
	assert.Error(t, err)
}
