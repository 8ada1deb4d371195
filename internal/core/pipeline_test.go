package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const activityLog = `{"_type":{"_name":"ActivityLogSection"},"subsections":{"_values":[
	{"emittedOutput":{"_value":"Test Suite 'All tests' started.\n"}},
	{"subsections":{"_values":[{"emittedOutput":{"_value":"Test Case '-[FSTTests testOK]' passed (0.001 seconds).\n"}}]}},
	{"emittedOutput":{"_value":"Test Suite 'All tests' passed."}}
]}}`

func newTestPipeline(q Querier, loc *fakeLocator, out *bytes.Buffer) Pipeline {
	return Pipeline{
		Querier: q,
		NewLocator: func(l Locator) BundleLocator {
			loc.config = l
			return loc
		},
		DerivedDataPath: "/dd",
		Out:             out,
	}
}

func TestPipelineSkipsNonTestInvocations(t *testing.T) {
	q := newFakeQuerier()
	loc := &fakeLocator{}
	var out bytes.Buffer

	err := newTestPipeline(q, loc, &out).Run(context.Background(), []string{"-workspace", "A.xcworkspace", "-scheme", "A", "build"})
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Empty(t, q.calls)
	assert.Empty(t, loc.calls)
}

func TestPipelineExplicitBundleBypassesDiscovery(t *testing.T) {
	q := newFakeQuerier().
		on(actionsJSON([2]string{"Build", "B"}, [2]string{"Test", "L1"}), "get", "--path", "X").
		on(activityLog, "get", "--path", "X", "--id", "L1")
	loc := &fakeLocator{}
	var out bytes.Buffer

	// A workspace with the wrong extension proves the extractor never runs.
	argv := []string{"-workspace", "not-a-workspace.txt", "-resultBundlePath", "X", "test"}
	require.NoError(t, newTestPipeline(q, loc, &out).Run(context.Background(), argv))

	assert.Empty(t, loc.calls)
	assert.Equal(t,
		"Test Suite 'All tests' started.\nTest Case '-[FSTTests testOK]' passed (0.001 seconds).\nTest Suite 'All tests' passed.",
		out.String())
	assert.Equal(t, [][]string{
		{"get", "--path", "X"},
		{"get", "--path", "X", "--id", "L1"},
	}, q.calls)
}

func TestPipelineLocatesBundleFromWorkspaceAndScheme(t *testing.T) {
	q := newFakeQuerier().
		on(actionsJSON([2]string{"Test", "L9"}), "get", "--path", "/dd/Firestore-x/Logs/Test/Run-Tests-1.xcresult").
		on(`{"emittedOutput":{"_value":"ok\n"}}`, "get", "--path", "/dd/Firestore-x/Logs/Test/Run-Tests-1.xcresult", "--id", "L9")
	loc := &fakeLocator{path: "/dd/Firestore-x/Logs/Test/Run-Tests-1.xcresult"}
	var out bytes.Buffer

	argv := []string{"-workspace", "Firestore/Example/Firestore.xcworkspace", "-scheme", "Tests", "test"}
	require.NoError(t, newTestPipeline(q, loc, &out).Run(context.Background(), argv))

	assert.Equal(t, [][2]string{{"Firestore", "Tests"}}, loc.calls)
	assert.Equal(t, Locator{DerivedDataPath: "/dd"}, loc.config)
	assert.Equal(t, "ok\n", out.String())
}

func TestPipelineDerivedDataPathSwitch(t *testing.T) {
	loc := &fakeLocator{path: "/custom/Logs/Test/Run-App-1.xcresult"}
	p := newTestPipeline(newFakeQuerier(), loc, &bytes.Buffer{})

	got, err := p.ResolveBundlePath(ParseArgs([]string{
		"-workspace", "App.xcworkspace", "-scheme", "App", "-derivedDataPath", "/custom", "test",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/custom/Logs/Test/Run-App-1.xcresult", got)
	assert.Equal(t, Locator{DerivedDataPath: "/dd", ProjectDataPath: "/custom"}, loc.config)
}

func TestPipelineMissingSwitches(t *testing.T) {
	for _, argv := range [][]string{
		{"-scheme", "App", "test"},
		{"-workspace", "App.xcworkspace", "test"},
		{"test"},
	} {
		q := newFakeQuerier()
		loc := &fakeLocator{}
		err := newTestPipeline(q, loc, &bytes.Buffer{}).Run(context.Background(), argv)
		require.Error(t, err, argv)
		assert.ErrorIs(t, err, ErrMissingKey, argv)
		assert.Empty(t, loc.calls)
		assert.Empty(t, q.calls)
	}
}

func TestPipelineBadWorkspace(t *testing.T) {
	loc := &fakeLocator{}
	err := newTestPipeline(newFakeQuerier(), loc, &bytes.Buffer{}).
		Run(context.Background(), []string{"-workspace", "foo.txt", "-scheme", "App", "test"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, loc.calls)
}

func TestPipelineNoTestActionInBundle(t *testing.T) {
	q := newFakeQuerier().on(actionsJSON([2]string{"Build", "B"}), "get", "--path", "X")
	var out bytes.Buffer

	err := newTestPipeline(q, &fakeLocator{}, &out).Run(context.Background(), []string{"-resultBundlePath", "X", "test"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, out.String())
	assert.Len(t, q.calls, 1)
}

func TestPipelineEndToEndWithRealLocator(t *testing.T) {
	dd := t.TempDir()
	bundlePath := filepath.Join(dd, "App-hash", "Logs", "Test", "Run-AppTests-2024.xcresult")
	require.NoError(t, os.MkdirAll(bundlePath, 0o755))
	now := time.Now()
	require.NoError(t, os.Chtimes(bundlePath, now, now))

	q := newFakeQuerier().
		on(actionsJSON([2]string{"Test", "LOG"}), "get", "--path", bundlePath).
		on(`{"emittedOutput":{"_value":"done\n"}}`, "get", "--path", bundlePath, "--id", "LOG")
	var out bytes.Buffer
	p := Pipeline{Querier: q, DerivedDataPath: dd, Out: &out}

	err := p.Run(context.Background(), []string{"-workspace", "App.xcworkspace", "-scheme", "AppTests", "test"})
	require.NoError(t, err)
	assert.Equal(t, "done\n", out.String())
}

func TestNewPipelineUsesConfig(t *testing.T) {
	cfg := Config{DerivedDataPath: "/dd", Xcrun: "/usr/bin/xcrun", Legacy: true}
	p := NewPipeline(cfg, &bytes.Buffer{}, nil)

	tool, ok := p.Querier.(XCResultTool)
	require.True(t, ok)
	assert.Equal(t, "/usr/bin/xcrun", tool.Xcrun)
	assert.True(t, tool.Legacy)
	assert.Equal(t, "/dd", p.DerivedDataPath)
	assert.Equal(t, Locator{DerivedDataPath: "/x"}, p.NewLocator(Locator{DerivedDataPath: "/x"}))
}
