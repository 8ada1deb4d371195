package core

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

type LogFormat string

const (
	LogFormatAuto       LogFormat = "auto"
	LogFormatRaw        LogFormat = "raw"
	LogFormatXcpretty   LogFormat = "xcpretty"
	LogFormatXcbeautify LogFormat = "xcbeautify"
)

func ParseLogFormat(v string) (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(strings.TrimSpace(v))); f {
	case "":
		return LogFormatRaw, nil
	case LogFormatAuto, LogFormatRaw, LogFormatXcpretty, LogFormatXcbeautify:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown log format %q (want auto, raw, xcpretty or xcbeautify)", ErrInvalidArgument, v)
	}
}

// LogFormatter pipes exported log text through xcpretty or xcbeautify.
type LogFormatter struct {
	Format LogFormat
	// LookPath resolves formatter binaries; exec.LookPath when nil.
	LookPath func(string) (string, error)
	Log      *zap.Logger
}

func (f LogFormatter) candidates() []string {
	switch f.Format {
	case LogFormatXcpretty:
		return []string{string(LogFormatXcpretty)}
	case LogFormatXcbeautify:
		return []string{string(LogFormatXcbeautify)}
	case LogFormatAuto:
		return []string{string(LogFormatXcbeautify), string(LogFormatXcpretty)}
	default:
		return nil
	}
}

// Render returns text as rendered by the first available formatter. Raw text
// comes back unchanged when no formatter is installed, it fails, or it prints
// nothing.
func (f LogFormatter) Render(ctx context.Context, text string) string {
	log := f.Log
	if log == nil {
		log = zap.NewNop()
	}
	lookPath := f.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, name := range f.candidates() {
		path, err := lookPath(name)
		if err != nil {
			log.Warn("log formatter not available", zap.String("formatter", name), zap.Error(err))
			continue
		}
		var out bytes.Buffer
		res, err := Run(ctx, CmdSpec{
			Path:   path,
			Stdin:  strings.NewReader(text),
			Stdout: &out,
			StderrLine: func(line string) {
				if strings.TrimSpace(line) != "" {
					log.Warn("log formatter stderr", zap.String("formatter", name), zap.String("line", line))
				}
			},
		})
		if err != nil || res.ExitCode != 0 {
			log.Warn("log formatter failed; showing raw log", zap.String("formatter", name), zap.Int("exit", res.ExitCode), zap.Error(err))
			return text
		}
		if strings.TrimSpace(out.String()) == "" {
			log.Warn("log formatter produced no output; showing raw log", zap.String("formatter", name))
			return text
		}
		return out.String()
	}
	return text
}
