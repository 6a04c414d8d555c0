// Package cli implements the fn command: build, inspect and solve function
// trees from the shell.
package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with ldflags, but *not* when installing via
// "go install".
var Version string

// NewRootCommand returns the fn command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fn",
		Short:         "Evaluate, differentiate and solve single-variable functions.",
		Long:          "Build function trees from primitives, evaluate them and their derivatives, and locate roots with Newton's method.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if GetFlag(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !GetFlag(cmd, "version") {
				return cmd.Help()
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, "fn ")
			if Version != "" {
				fmt.Fprint(out, Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprint(out, info.Main.Version)
			} else {
				fmt.Fprint(out, "(unknown version)")
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	root.Flags().Bool("version", false, "Report version of this executable")
	root.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	root.PersistentFlags().Bool("plain", false, "print bare values even on a terminal")

	root.AddCommand(
		newCreateCmd(),
		newCombineCmd(),
		newEvalCmd(),
		newDerivCmd(),
		newRenderCmd(),
		newNewtonCmd(),
		newSampleCmd(),
		newNamesCmd(),
	)
	return root
}

// Execute runs the fn command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
