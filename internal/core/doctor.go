package core

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

type DoctorCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

type DoctorReport struct {
	Checks []DoctorCheck `json:"checks"`
}

func (r DoctorReport) OK() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// xcresulttool prints e.g. "xcresulttool version 23021, format version 3.53 (current)".
var xcresulttoolVersionRE = regexp.MustCompile(`version (\d+)`)

// legacyToolVersion is the first xcresulttool build (Xcode 16) that needs
// --legacy for `get --format json`.
const legacyToolVersion = 23000

func captureOutput(ctx context.Context, xcrun string, args ...string) (string, error) {
	var out bytes.Buffer
	var stderr []string
	res, err := Run(ctx, CmdSpec{
		Path:       xcrun,
		Args:       args,
		Stdout:     &out,
		StderrLine: func(s string) { stderr = append(stderr, s) },
	})
	if err != nil || res.ExitCode != 0 {
		if msg := strings.TrimSpace(strings.Join(stderr, "\n")); msg != "" {
			return "", fmt.Errorf("exit %d: %s", res.ExitCode, msg)
		}
		if err != nil {
			return "", err
		}
		return "", fmt.Errorf("exit %d", res.ExitCode)
	}
	return strings.TrimSpace(out.String()), nil
}

// Doctor checks that xcresulttool runs and that DerivedData exists, emitting a
// warning per failed check.
func Doctor(ctx context.Context, cfg Config, emit Emitter) DoctorReport {
	rep := DoctorReport{Checks: []DoctorCheck{}}

	check := func(name string, fn func() (string, error), hint string) {
		out, err := fn()
		if err != nil {
			rep.Checks = append(rep.Checks, DoctorCheck{Name: name, OK: false, Detail: err.Error(), Hint: hint})
			if emit != nil {
				emit.Emit(Warn("doctor", fmt.Sprintf("%s: %v", name, err)))
			}
			return
		}
		rep.Checks = append(rep.Checks, DoctorCheck{Name: name, OK: true, Detail: out})
	}

	check("xcresulttool available", func() (string, error) {
		out, err := captureOutput(ctx, cfg.Xcrun, "xcresulttool", "version")
		if err != nil {
			return "", err
		}
		m := xcresulttoolVersionRE.FindStringSubmatch(out)
		if m == nil {
			return out, nil
		}
		v, _ := strconv.Atoi(m[1])
		if v >= legacyToolVersion && !cfg.Legacy {
			return "", fmt.Errorf("%s requires --legacy", out)
		}
		return out, nil
	}, "xcresulttool is part of Xcode; on Xcode 16+ set "+EnvLegacy+"=1.")

	check("DerivedData directory", func() (string, error) {
		fi, err := os.Stat(cfg.DerivedDataPath)
		if err != nil {
			return "", err
		}
		if !fi.IsDir() {
			return "", fmt.Errorf("%s is not a directory", cfg.DerivedDataPath)
		}
		return cfg.DerivedDataPath, nil
	}, "Run `xcodebuild test` once, or set "+EnvDerivedData+".")

	return rep
}
