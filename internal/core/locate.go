package core

import (
	"fmt"
	"path/filepath"

	"github.com/xcbolt/xcresult-logs/internal/util"
)

// DefaultDerivedDataPath is where Xcode keeps per-project build output.
func DefaultDerivedDataPath(home string) string {
	return filepath.Join(home, "Library", "Developer", "Xcode", "DerivedData")
}

// BundleLocator finds the result bundle xcodebuild most recently wrote for a
// project and scheme.
type BundleLocator interface {
	Locate(project, scheme string) (string, error)
}

// Locator searches a DerivedData tree. Newest is decided by mtime, which races
// with a concurrently running xcodebuild; callers get whatever was newest at
// listing time.
type Locator struct {
	DerivedDataPath string
	// ProjectDataPath, when set, is the project's build directory itself, as
	// written by `xcodebuild -derivedDataPath`; DerivedData is not searched.
	ProjectDataPath string
}

// ProjectDir returns the newest "<project>-<hash>" directory under DerivedData.
func (l Locator) ProjectDir(project string) (string, error) {
	if l.ProjectDataPath != "" {
		return l.ProjectDataPath, nil
	}
	dir, err := util.FindNewestWithPrefix(l.DerivedDataPath, project+"-")
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", fmt.Errorf("%w: could not find project data for %s in %s", ErrNotFound, project, l.DerivedDataPath)
	}
	return dir, nil
}

func testLogsDir(projectDir string) string {
	return filepath.Join(projectDir, "Logs", "Test")
}

func bundlePrefix(scheme string) string {
	return "Run-" + scheme + "-"
}

func (l Locator) Locate(project, scheme string) (string, error) {
	projectDir, err := l.ProjectDir(project)
	if err != nil {
		return "", err
	}
	bundleDir := testLogsDir(projectDir)
	bundle, err := util.FindNewestWithPrefix(bundleDir, bundlePrefix(scheme))
	if err != nil {
		return "", err
	}
	if bundle == "" {
		return "", fmt.Errorf("%w: could not find xcresult bundle for %s in %s", ErrNotFound, scheme, bundleDir)
	}
	return bundle, nil
}

// Bundles lists every result bundle for project and scheme, newest first.
func (l Locator) Bundles(project, scheme string) ([]string, error) {
	projectDir, err := l.ProjectDir(project)
	if err != nil {
		return nil, err
	}
	bundleDir := testLogsDir(projectDir)
	bundles, err := util.ListWithPrefix(bundleDir, bundlePrefix(scheme))
	if err != nil {
		return nil, err
	}
	if len(bundles) == 0 {
		return nil, fmt.Errorf("%w: could not find xcresult bundle for %s in %s", ErrNotFound, scheme, bundleDir)
	}
	return bundles, nil
}
