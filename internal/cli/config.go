package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xcbolt/xcresult-logs/internal/core"
	"github.com/xcbolt/xcresult-logs/internal/util"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration after .env, environment and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := NewAppContext(inspectFlags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = ac.Log.Sync() }()

			if ac.Flags.JSON {
				ac.Emitter.Emit(core.Result("config", true, ac.Config))
				return nil
			}
			b, _ := json.MarshalIndent(ac.Config, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			if util.Exists(".env") {
				fmt.Fprintln(cmd.OutOrStdout(), "(.env loaded from working directory)")
			}
			return nil
		},
	}
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that xcresulttool runs and DerivedData exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := NewAppContext(inspectFlags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = ac.Log.Sync() }()

			var emit core.Emitter
			if ac.Flags.JSON {
				emit = ac.Emitter
			}
			rep := core.Doctor(cmd.Context(), ac.Config, emit)
			if ac.Flags.JSON {
				ac.Emitter.Emit(core.Result("doctor", rep.OK(), rep))
			} else {
				out := cmd.OutOrStdout()
				for _, c := range rep.Checks {
					mark := "ok  "
					if !c.OK {
						mark = "FAIL"
					}
					fmt.Fprintf(out, "[%s] %s: %s\n", mark, c.Name, c.Detail)
					if !c.OK && c.Hint != "" {
						fmt.Fprintf(out, "       hint: %s\n", c.Hint)
					}
				}
			}
			if !rep.OK() {
				return ExitError{Code: 1}
			}
			return nil
		},
	}
}
