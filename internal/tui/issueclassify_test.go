package tui

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"Test Case '-[FSTTests testOK]' passed (0.001 seconds).", LinePass},
		{"Test Case '-[FSTTests testBad]' failed (0.010 seconds).", LineFailure},
		{"Test Case '-[FSTTests testLater]' skipped (0.000 seconds).", LineWarning},
		{"Test Suite 'All tests' started at 2024-05-01 09:00:00.000", LineSuite},
		{"Test Suite 'FSTTests' failed at 2024-05-01 09:00:01.000.", LineFailure},
		{"/src/FSTTests.m:42: error: -[FSTTests testBad] : XCTAssertEqual failed", LineFailure},
		{"** TEST FAILED **", LineFailure},
		{"warning: deprecated API", LineWarning},
		{"    Executed 12 tests, with 0 failures", LineNormal},
		{"", LineNormal},
	}
	for _, tc := range tests {
		got := classifyLine(tc.line)
		if got != tc.want {
			t.Fatalf("classifyLine(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
