package tui

import (
	"regexp"
	"strings"
)

// LineKind classifies a line of XCTest console output.
type LineKind int

const (
	LineNormal LineKind = iota
	LineSuite
	LinePass
	LineWarning
	LineFailure
)

var (
	testCaseRE  = regexp.MustCompile(`^Test Case '.*' (passed|failed|skipped)`)
	testSuiteRE = regexp.MustCompile(`^Test Suite '.*' (started|passed|failed)`)
	fileErrorRE = regexp.MustCompile(`(?i)^[^:\s].*:\d+(?::\d+)?:\s*(fatal error|error):`)
)

func classifyLine(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	if m := testCaseRE.FindStringSubmatch(trimmed); m != nil {
		switch m[1] {
		case "failed":
			return LineFailure
		case "passed":
			return LinePass
		default:
			return LineWarning
		}
	}
	if m := testSuiteRE.FindStringSubmatch(trimmed); m != nil {
		if m[1] == "failed" {
			return LineFailure
		}
		return LineSuite
	}
	if fileErrorRE.MatchString(trimmed) {
		return LineFailure
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "fatal error"),
		strings.Contains(lower, "** test failed **"),
		strings.Contains(lower, "assertion failure"),
		strings.Contains(lower, "xctassert"):
		return LineFailure
	case strings.Contains(lower, "warning:"), strings.Contains(line, "⚠"):
		return LineWarning
	}
	return LineNormal
}
