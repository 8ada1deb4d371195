package core

import (
	"context"
	"io"

	"go.uber.org/zap"
)

const (
	SwitchResultBundlePath = "-resultBundlePath"
	SwitchWorkspace        = "-workspace"
	SwitchScheme           = "-scheme"
	SwitchDerivedDataPath  = "-derivedDataPath"

	testAction = "test"
)

// Pipeline prints the test log of the bundle an xcodebuild invocation wrote.
type Pipeline struct {
	Querier Querier
	// NewLocator turns the resolved search settings into a BundleLocator.
	NewLocator      func(Locator) BundleLocator
	DerivedDataPath string
	Out             io.Writer
	Log             *zap.Logger
}

// NewPipeline wires a Pipeline from cfg.
func NewPipeline(cfg Config, out io.Writer, log *zap.Logger) Pipeline {
	tool := cfg.Tool()
	tool.Log = log
	return Pipeline{
		Querier: tool,
		NewLocator: func(l Locator) BundleLocator {
			return l
		},
		DerivedDataPath: cfg.DerivedDataPath,
		Out:             out,
		Log:             log,
	}
}

func (p Pipeline) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

// WantsTestLog reports whether argv, an xcodebuild argument list, runs the
// test action. It touches neither the environment nor the filesystem.
func WantsTestLog(argv []string) bool {
	return ParseArgs(argv).HasAction(testAction)
}

// Run scavenges argv (an xcodebuild argument list). Without a "test" action it
// does nothing. Otherwise it resolves the bundle, finds the Test log and writes
// it to Out unchanged.
func (p Pipeline) Run(ctx context.Context, argv []string) error {
	args := ParseArgs(argv)
	if !args.HasAction(testAction) {
		p.logger().Debug("no test action; nothing to print", zap.Strings("positional", args.Positional))
		return nil
	}

	bundlePath, err := p.ResolveBundlePath(args)
	if err != nil {
		return err
	}
	log := p.logger().With(zap.String("bundle", bundlePath))

	logID, err := FindLogID(ctx, p.Querier, bundlePath)
	if err != nil {
		return err
	}
	log.Debug("resolved test log", zap.String("logId", logID))

	text, err := ExportLog(ctx, p.Querier, bundlePath, logID)
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.Out, text)
	return err
}

// ResolveBundlePath prefers an explicit -resultBundlePath. Otherwise it needs
// -workspace and -scheme and searches DerivedData.
func (p Pipeline) ResolveBundlePath(args Args) (string, error) {
	if path, ok := args.Switch(SwitchResultBundlePath); ok {
		return path, nil
	}
	workspace, err := args.Require(SwitchWorkspace)
	if err != nil {
		return "", err
	}
	scheme, err := args.Require(SwitchScheme)
	if err != nil {
		return "", err
	}
	project, err := ProjectFromWorkspace(workspace)
	if err != nil {
		return "", err
	}
	loc := Locator{DerivedDataPath: p.DerivedDataPath}
	if v, ok := args.Switch(SwitchDerivedDataPath); ok {
		loc.ProjectDataPath = v
	}
	p.logger().Debug("locating result bundle",
		zap.String("project", project),
		zap.String("scheme", scheme),
		zap.String("derivedData", loc.DerivedDataPath),
		zap.String("projectData", loc.ProjectDataPath))
	newLocator := p.NewLocator
	if newLocator == nil {
		newLocator = func(l Locator) BundleLocator { return l }
	}
	return newLocator(loc).Locate(project, scheme)
}
