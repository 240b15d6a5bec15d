// Command um runs Universal Machine programs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/basso-um/um/internal/cli"
)

// version is the module's release version, reported by "um version".
// Bumped by hand at tag time; there is no build-info injection here
// because this binary has no CI release pipeline of its own.
const version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	var opts cli.Options
	exitCode := 0

	root := &cobra.Command{
		Use:   "um [program-file]",
		Short: "Universal Machine interpreter",
		Long: "um executes programs written for the Universal Machine: a segmented-memory, " +
			"register-based abstract machine reading fixed-width 32-bit instructions. " +
			"With no program-file argument, the program is read from standard input.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.ProgramPath = args[0]
			}
			exitCode = cli.Run(opts)
			return nil
		},
	}
	root.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "use human-readable diagnostic logging")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the um version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "um %s\n", version)
			return nil
		},
	}
	root.AddCommand(versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "um: %s\n", err)
		return 1
	}
	return exitCode
}
