package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xcbolt/xcresult-logs/internal/core"
	"github.com/xcbolt/xcresult-logs/internal/tui"
)

var inspectFlags GlobalFlags

func newInspectCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xcresult-inspect",
		Short:         "Locate, describe and browse Xcode result bundles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&inspectFlags.JSON, "json", false, "Emit NDJSON event stream to stdout")
	root.PersistentFlags().BoolVar(&inspectFlags.Verbose, "verbose", false, "Debug logging to stderr")
	root.PersistentFlags().StringVar(&inspectFlags.DerivedData, "derived-data", "", "DerivedData root (default: ~/Library/Developer/Xcode/DerivedData)")

	root.AddCommand(newLocateCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newDoctorCmd())
	return root
}

func ExecuteInspect() {
	cmd := newInspectCmd()
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	if err := cmd.Execute(); err != nil {
		PrintFatal(err)
	}
}

// emitFailure reports err through the emitter in --json mode and returns an
// ExitError so the message is not printed twice.
func emitFailure(ac AppContext, name string, err error) error {
	if !ac.Flags.JSON {
		return err
	}
	ac.Emitter.Emit(core.ErrFromError(name, err))
	return ExitError{Code: 1}
}

type locateResult struct {
	Bundles     []string              `json:"bundles"`
	DerivedData *core.DerivedDataInfo `json:"derivedData,omitempty"`
}

func newLocateCmd() *cobra.Command {
	var workspace string
	var scheme string
	var all bool

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Print the result bundle xcresult-logs would read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := NewAppContext(inspectFlags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = ac.Log.Sync() }()

			res, err := locate(ac, workspace, scheme, all)
			if err != nil {
				return emitFailure(ac, "locate", err)
			}
			if ac.Flags.JSON {
				ac.Emitter.Emit(core.Result("locate", true, res))
				return nil
			}
			out := cmd.OutOrStdout()
			for _, b := range res.Bundles {
				fmt.Fprintln(out, b)
			}
			if res.DerivedData != nil && res.DerivedData.WorkspacePath != "" {
				fmt.Fprintf(out, "workspace: %s\n", res.DerivedData.WorkspacePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Path to the .xcworkspace passed to xcodebuild")
	cmd.Flags().StringVar(&scheme, "scheme", "", "Scheme passed to xcodebuild")
	cmd.Flags().BoolVar(&all, "all", false, "List every bundle for the scheme, newest first")
	_ = cmd.MarkFlagRequired("workspace")
	_ = cmd.MarkFlagRequired("scheme")
	return cmd
}

func locate(ac AppContext, workspace, scheme string, all bool) (locateResult, error) {
	project, err := core.ProjectFromWorkspace(workspace)
	if err != nil {
		return locateResult{}, err
	}
	loc := core.Locator{DerivedDataPath: ac.Config.DerivedDataPath}
	var bundles []string
	if all {
		bundles, err = loc.Bundles(project, scheme)
	} else {
		var b string
		b, err = loc.Locate(project, scheme)
		bundles = []string{b}
	}
	if err != nil {
		return locateResult{}, err
	}
	res := locateResult{Bundles: bundles}
	// Bundles live at <project dir>/Logs/Test/<bundle>.
	projectDir := filepath.Dir(filepath.Dir(filepath.Dir(bundles[0])))
	if info, err := core.ReadDerivedDataInfo(projectDir); err == nil {
		res.DerivedData = &info
	} else {
		ac.Log.Debug("no DerivedData info.plist", zap.String("dir", projectDir), zap.Error(err))
	}
	return res, nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <bundle.xcresult>",
		Short: "Describe a result bundle and its Test log reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := NewAppContext(inspectFlags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = ac.Log.Sync() }()

			info, err := core.ReadBundleInfo(args[0])
			if err != nil {
				return emitFailure(ac, "info", err)
			}
			tool := ac.Config.Tool()
			tool.Log = ac.Log
			logID, err := core.FindLogID(context.Background(), tool, args[0])
			if err != nil && !errors.Is(err, core.ErrNotFound) {
				return emitFailure(ac, "info", err)
			}
			if ac.Flags.JSON {
				ac.Emitter.Emit(core.Result("info", true, map[string]any{"bundle": info, "testLogId": logID}))
				return nil
			}
			printBundleInfo(cmd.OutOrStdout(), info, logID)
			return nil
		},
	}
}

func printBundleInfo(w io.Writer, info core.BundleInfo, logID string) {
	fmt.Fprintf(w, "path:     %s\n", info.Path)
	fmt.Fprintf(w, "version:  %d.%d\n", info.VersionMajor, info.VersionMinor)
	if !info.DateCreated.IsZero() {
		fmt.Fprintf(w, "created:  %s\n", info.DateCreated.Local().Format("2006-01-02 15:04:05"))
	}
	if info.RootID != "" {
		fmt.Fprintf(w, "root id:  %s\n", info.RootID)
	}
	if logID == "" {
		fmt.Fprintln(w, "test log: (none)")
		return
	}
	fmt.Fprintf(w, "test log: %s\n", logID)
}

func newViewCmd() *cobra.Command {
	var bundle string
	var workspace string
	var scheme string
	var pick bool
	var format string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a bundle's test log in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := NewAppContext(inspectFlags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = ac.Log.Sync() }()

			logFormat, err := core.ParseLogFormat(format)
			if err != nil {
				return err
			}
			if bundle == "" {
				bundle, err = chooseBundle(ac, workspace, scheme, pick)
				if err != nil {
					return err
				}
				if bundle == "" {
					return nil
				}
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			tool := ac.Config.Tool()
			tool.Log = ac.Log
			logID, err := core.FindLogID(ctx, tool, bundle)
			if err != nil {
				return err
			}
			text, err := core.ExportLog(ctx, tool, bundle, logID)
			if err != nil {
				return err
			}
			text = core.LogFormatter{Format: logFormat, Log: ac.Log}.Render(ctx, text)
			return tui.RunViewer(filepath.Base(bundle), text)
		},
	}

	cmd.Flags().StringVar(&bundle, "bundle", "", "Result bundle path (skips discovery)")
	cmd.Flags().StringVar(&workspace, "workspace", "", "Path to the .xcworkspace passed to xcodebuild")
	cmd.Flags().StringVar(&scheme, "scheme", "", "Scheme passed to xcodebuild")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose among all bundles for the scheme")
	cmd.Flags().StringVar(&format, "format", "raw", "Log rendering: raw, auto, xcpretty or xcbeautify")
	return cmd
}

func chooseBundle(ac AppContext, workspace, scheme string, pick bool) (string, error) {
	if workspace == "" || scheme == "" {
		return "", fmt.Errorf("%w: pass --bundle, or both --workspace and --scheme", core.ErrMissingKey)
	}
	res, err := locate(ac, workspace, scheme, pick)
	if err != nil {
		return "", err
	}
	if !pick || len(res.Bundles) == 1 {
		return res.Bundles[0], nil
	}
	return tui.PickBundle(res.Bundles)
}
