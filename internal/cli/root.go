package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/xcbolt/xcresult-logs/internal/core"
)

// newLogsCmd is the xcresult-logs command. It takes the xcodebuild argument
// list verbatim, so cobra's own flag parsing is off and there is no --help.
func newLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xcresult-logs [xcodebuild arguments...]",
		Short: "Print the test log captured in an Xcode result bundle",
		Long: `Pass the same arguments given to xcodebuild. When they include the
"test" action, the console output of the newest matching .xcresult bundle
is written to stdout. Any other invocation prints nothing.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Anything but a test run exits before config, .env or $HOME are read.
			if !core.WantsTestLog(args) {
				return nil
			}
			ac, err := NewAppContext(GlobalFlags{}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = ac.Log.Sync() }()

			p := core.NewPipeline(ac.Config, cmd.OutOrStdout(), ac.Log)
			if err := p.Run(context.Background(), args); err != nil {
				return ExitError{Code: 1, Err: err}
			}
			return nil
		},
	}
}

func Execute() {
	cmd := newLogsCmd()
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		PrintFatal(err)
	}
}
