package sdk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
)

// Info describes an SDK as declared by its SDKSettings.json.
type Info struct {
	CanonicalName string `json:"CanonicalName"`
	DisplayName   string `json:"DisplayName"`
	Version       string `json:"Version"`
}

// ReadInfo loads SDKSettings.json from the SDK root.
func ReadInfo(root string) (*Info, error) {
	data, err := os.ReadFile(filepath.Join(root, "SDKSettings.json")) // #nosec G304 -- fixed name under caller-supplied SDK root
	if err != nil {
		return nil, fmt.Errorf("failed to read SDK settings: %w", err)
	}

	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse SDK settings: %w", err)
	}
	return &info, nil
}

// BundleInfo holds the subset of a framework bundle's Info.plist that the
// list command reports.
type BundleInfo struct {
	Identifier string `json:"identifier,omitempty"`
	Version    string `json:"version,omitempty"`
}

// Info.plist locations inside a framework bundle, in lookup order. Shallow
// bundles keep it at the top level; versioned macOS bundles under Resources.
var infoPlistCandidates = []string{
	"Resources/Info.plist",
	"Versions/Current/Resources/Info.plist",
	"Versions/A/Resources/Info.plist",
	"Info.plist",
}

// ReadBundleInfo parses the Info.plist of the named framework. Binary
// plists fail the XML parse and surface as an error; callers treat missing
// metadata as non-fatal.
func ReadBundleInfo(root, frameworksDir, framework string) (*BundleInfo, error) {
	bundle := filepath.Join(root, frameworksDir, framework+frameworkSuffix)

	var lastErr error
	for _, rel := range infoPlistCandidates {
		path := filepath.Join(bundle, rel)
		if _, err := os.Stat(path); err != nil {
			lastErr = err
			continue
		}
		info, err := parseInfoPlist(path)
		if err != nil {
			lastErr = err
			continue
		}
		return info, nil
	}
	return nil, fmt.Errorf("no readable Info.plist in %s: %w", bundle, lastErr)
}

func parseInfoPlist(path string) (*BundleInfo, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to parse plist %s: %w", path, err)
	}

	dict := doc.FindElement("plist/dict")
	if dict == nil {
		return nil, fmt.Errorf("plist %s has no top-level dict", path)
	}

	// Plist dicts alternate <key> and value elements.
	info := &BundleInfo{}
	key := ""
	for _, el := range dict.ChildElements() {
		if el.Tag == "key" {
			key = el.Text()
			continue
		}
		switch key {
		case "CFBundleIdentifier":
			info.Identifier = el.Text()
		case "CFBundleShortVersionString":
			info.Version = el.Text()
		case "CFBundleVersion":
			if info.Version == "" {
				info.Version = el.Text()
			}
		}
		key = ""
	}
	return info, nil
}
