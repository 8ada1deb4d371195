package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

const workspaceExt = ".xcworkspace"

// ProjectFromWorkspace returns the project name for a workspace path, e.g.
// "Firestore/Example/Firestore.xcworkspace" yields "Firestore".
func ProjectFromWorkspace(path string) (string, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	// A bare ".xcworkspace" is a hidden file, not a workspace named "".
	if ext != workspaceExt || stem == "" {
		return "", fmt.Errorf("%w: %s is not a valid workspace path", ErrInvalidArgument, path)
	}
	return stem, nil
}
