package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xcbolt/xcresult-logs/internal/core"
)

type GlobalFlags struct {
	JSON        bool
	Verbose     bool
	DerivedData string
}

type AppContext struct {
	Config  core.Config
	Log     *zap.Logger
	Emitter core.Emitter
	Flags   GlobalFlags
}

// NewAppContext loads configuration and builds the logger and emitter. Flags
// override the environment.
func NewAppContext(flags GlobalFlags, out io.Writer) (AppContext, error) {
	cfg, err := core.LoadConfig()
	if err != nil {
		return AppContext{}, err
	}
	if flags.DerivedData != "" {
		cfg.DerivedDataPath = flags.DerivedData
	}
	if flags.Verbose {
		cfg.Verbose = true
	}
	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return AppContext{}, err
	}
	emit := core.Emitter(core.NewTextEmitter(out))
	if flags.JSON {
		emit = core.NewNDJSONEmitter(out, core.EventSchemaVersion)
	}
	return AppContext{Config: cfg, Log: log, Emitter: emit, Flags: flags}, nil
}

// newLogger writes to stderr only; stdout carries the log text.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

func PrintFatal(err error) {
	var ee ExitError
	if errors.As(err, &ee) {
		// A bare exit code means the failure was already reported.
		if ee.Err != nil {
			fmt.Fprintln(os.Stderr, ee.Error())
		}
		os.Exit(ee.Code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "command failed"
}

func (e ExitError) Unwrap() error { return e.Err }
