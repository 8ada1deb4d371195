package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"howett.net/plist"
)

// BundleInfo is the summary stored in an .xcresult bundle's Info.plist.
type BundleInfo struct {
	Path         string    `json:"path"`
	VersionMajor int       `json:"versionMajor"`
	VersionMinor int       `json:"versionMinor"`
	DateCreated  time.Time `json:"dateCreated,omitempty"`
	RootID       string    `json:"rootId,omitempty"`
}

type bundleInfoPlist struct {
	DateCreated time.Time `plist:"dateCreated"`
	RootID      struct {
		Hash string `plist:"hash"`
	} `plist:"rootId"`
	Version struct {
		Major int `plist:"major"`
		Minor int `plist:"minor"`
	} `plist:"version"`
}

func ReadBundleInfo(bundlePath string) (BundleInfo, error) {
	b, err := os.ReadFile(filepath.Join(bundlePath, "Info.plist"))
	if err != nil {
		return BundleInfo{}, fmt.Errorf("read Info.plist: %w", err)
	}
	var p bundleInfoPlist
	if _, err := plist.Unmarshal(b, &p); err != nil {
		return BundleInfo{}, fmt.Errorf("parse Info.plist: %w", err)
	}
	return BundleInfo{
		Path:         bundlePath,
		VersionMajor: p.Version.Major,
		VersionMinor: p.Version.Minor,
		DateCreated:  p.DateCreated,
		RootID:       p.RootID.Hash,
	}, nil
}

// DerivedDataInfo is what Xcode records in DerivedData/<Project>-<hash>/info.plist.
type DerivedDataInfo struct {
	Dir              string    `json:"dir"`
	WorkspacePath    string    `json:"workspacePath,omitempty"`
	LastAccessedDate time.Time `json:"lastAccessedDate,omitempty"`
}

func ReadDerivedDataInfo(projectDir string) (DerivedDataInfo, error) {
	b, err := os.ReadFile(filepath.Join(projectDir, "info.plist"))
	if err != nil {
		return DerivedDataInfo{}, fmt.Errorf("read info.plist: %w", err)
	}
	var m map[string]any
	if _, err := plist.Unmarshal(b, &m); err != nil {
		return DerivedDataInfo{}, fmt.Errorf("parse info.plist: %w", err)
	}
	info := DerivedDataInfo{Dir: projectDir}
	if s, ok := m["WorkspacePath"].(string); ok {
		info.WorkspacePath = s
	}
	if t, ok := m["LastAccessedDate"].(time.Time); ok {
		info.LastAccessedDate = t
	}
	return info, nil
}
