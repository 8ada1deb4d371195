package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectFromWorkspace(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"Firestore/Example/Firestore.xcworkspace", "Firestore"},
		{"Firestore.xcworkspace", "Firestore"},
		{"/abs/path/My.App.xcworkspace", "My.App"},
		{"Firestore/Example/Firestore.xcworkspace/", "Firestore"},
	}
	for _, tc := range tests {
		got, err := ProjectFromWorkspace(tc.path)
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}
}

func TestProjectFromWorkspaceRejectsOtherExtensions(t *testing.T) {
	for _, path := range []string{
		"foo.txt",
		"Firestore/Firestore.xcodeproj",
		"Firestore",
		"dir/.xcworkspace",
		"Firestore.XCWORKSPACE",
	} {
		_, err := ProjectFromWorkspace(path)
		require.Error(t, err, path)
		assert.ErrorIs(t, err, ErrInvalidArgument, path)
		assert.Contains(t, err.Error(), path)
	}
}
