package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Querier runs xcresulttool and decodes its JSON output into v.
type Querier interface {
	QueryJSON(ctx context.Context, v any, args ...string) error
}

// XCResultTool invokes `xcrun xcresulttool`. Every call spawns a new process;
// nothing is cached.
type XCResultTool struct {
	// Xcrun is the xcrun executable; "xcrun" when empty.
	Xcrun string
	// Legacy adds --legacy to `get`, which Xcode 16+ requires for the
	// object-graph API.
	Legacy bool
	Log    *zap.Logger
}

func (t XCResultTool) logger() *zap.Logger {
	if t.Log == nil {
		return zap.NewNop()
	}
	return t.Log
}

func (t XCResultTool) commandArgs(args []string) []string {
	out := make([]string, 0, len(args)+5)
	out = append(out, "xcresulttool")
	if t.Legacy && len(args) > 0 && args[0] == "get" {
		out = append(out, "get", "--legacy")
		args = args[1:]
	}
	out = append(out, args...)
	return append(out, "--format", "json")
}

func (t XCResultTool) QueryJSON(ctx context.Context, v any, args ...string) error {
	xcrun := t.Xcrun
	if xcrun == "" {
		xcrun = "xcrun"
	}
	cmdArgs := t.commandArgs(args)
	log := t.logger().With(zap.Strings("args", cmdArgs))

	var stdout bytes.Buffer
	var stderr strings.Builder
	res, err := Run(ctx, CmdSpec{
		Path:   xcrun,
		Args:   cmdArgs,
		Stdout: &stdout,
		StderrLine: func(s string) {
			stderr.WriteString(s)
			stderr.WriteString("\n")
		},
	})
	log.Debug("xcresulttool finished",
		zap.Int("exitCode", res.ExitCode),
		zap.Duration("duration", res.Duration),
		zap.Int("bytes", stdout.Len()))
	if err != nil {
		return &ToolError{Args: cmdArgs, ExitCode: res.ExitCode, Stderr: stderr.String(), Err: err}
	}
	if err := json.Unmarshal(stdout.Bytes(), v); err != nil {
		return &ToolError{Args: cmdArgs, Stderr: stderr.String(), Err: fmt.Errorf("xcresult json parse: %w", err)}
	}
	return nil
}

// xcresulttool wraps every scalar as {"_type": ..., "_value": ...} and every
// array as {"_type": ..., "_values": [...]}. Only the fields read below are
// declared.

type StringValue struct {
	Value string `json:"_value"`
}

type actionsInvocationRecord struct {
	Actions *actionRecordList `json:"actions"`
}

type actionRecordList struct {
	Values *[]actionRecord `json:"_values"`
}

type actionRecord struct {
	SchemeCommandName *StringValue  `json:"schemeCommandName"`
	ActionResult      *actionResult `json:"actionResult"`
}

type actionResult struct {
	LogRef *reference `json:"logRef"`
}

type reference struct {
	ID *StringValue `json:"id"`
}

const testCommandName = "Test"

// FindLogID returns the log reference id of the first "Test" action recorded
// in the bundle. Later Test actions, such as retries, are ignored.
func FindLogID(ctx context.Context, q Querier, bundlePath string) (string, error) {
	var rec actionsInvocationRecord
	if err := q.QueryJSON(ctx, &rec, "get", "--path", bundlePath); err != nil {
		return "", err
	}
	return logIDFromRecord(rec, bundlePath)
}

func logIDFromRecord(rec actionsInvocationRecord, bundlePath string) (string, error) {
	if rec.Actions == nil {
		return "", fmt.Errorf("%w: %s has no actions", ErrUnexpectedShape, bundlePath)
	}
	if rec.Actions.Values == nil {
		return "", fmt.Errorf("%w: actions in %s has no _values", ErrUnexpectedShape, bundlePath)
	}
	for i, action := range *rec.Actions.Values {
		if action.SchemeCommandName == nil {
			return "", fmt.Errorf("%w: action %d in %s has no schemeCommandName", ErrUnexpectedShape, i, bundlePath)
		}
		if action.SchemeCommandName.Value != testCommandName {
			continue
		}
		if action.ActionResult == nil || action.ActionResult.LogRef == nil || action.ActionResult.LogRef.ID == nil {
			return "", fmt.Errorf("%w: test action %d in %s has no actionResult.logRef.id", ErrUnexpectedShape, i, bundlePath)
		}
		return action.ActionResult.LogRef.ID.Value, nil
	}
	return "", fmt.Errorf("%w: could not find a log id in xcresult at %s", ErrNotFound, bundlePath)
}

// ExportLog fetches the activity log logID from the bundle and returns all of
// its emitted output.
func ExportLog(ctx context.Context, q Querier, bundlePath, logID string) (string, error) {
	var root ActivityLog
	if err := q.QueryJSON(ctx, &root, "get", "--path", bundlePath, "--id", logID); err != nil {
		return "", err
	}
	return CollectLog(root), nil
}
