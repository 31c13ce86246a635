// vhdlang is the command-line driver of the front-end: it parses and
// analyzes VHDL sources and renders the collected diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hdlvibe/vhdlang/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:           "vhdlang",
		Short:         "VHDL name resolution and type checking",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var projectFile string
	var library string
	var verbose bool

	check := &cobra.Command{
		Use:   "check [files...]",
		Short: "Parse and analyze VHDL sources, reporting diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			return runCheck(projectFile, library, args)
		},
	}
	check.Flags().StringVarP(&projectFile, "project", "p", "", "project file (default "+config.DefaultProjectFile+" if present)")
	check.Flags().StringVarP(&library, "library", "l", config.DefaultLibrary, "library for files given on the command line")
	check.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(check)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
