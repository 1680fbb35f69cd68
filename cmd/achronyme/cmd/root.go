package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// isInteractive reports whether stdin looks like a terminal rather than
// a pipe or redirected file, deciding between the REPL and running stdin
// as a script per spec section 6.
func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes (spec section 6): 0 clean, 1 parse error, 2 evaluation
// error, 3 I/O error. Subcommands that fail in a way finer-grained than
// cobra's plain error-or-not signal stash the code here before returning.
const (
	ExitOK       = 0
	ExitParse    = 1
	ExitEval     = 2
	ExitIO       = 3
	exitUnset    = -1
)

var pendingExitCode = exitUnset

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "achronyme",
	Short: "Achronyme numerical-computing language",
	Long: `achronyme is the reference CLI for the Achronyme language: an
interactive, dynamically-typed language for numerical computing with
dense tensors, linear algebra, signal processing, linear programming,
and graph/PERT analysis built in.

Run a script, evaluate an expression inline, or start the REPL with no
arguments.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && isInteractive() {
			return runREPL(cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return runSource(resolveInput("", args))
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command and returns the process exit code,
// following spec section 6's fixed taxonomy rather than cobra's plain
// zero-or-one.
func Execute() int {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = false
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if pendingExitCode != exitUnset {
			return pendingExitCode
		}
		return ExitIO
	}
	if pendingExitCode != exitUnset {
		return pendingExitCode
	}
	return ExitOK
}

// failWith records the exit code a subcommand wants Execute to return
// alongside the cobra error it returns from RunE.
func failWith(code int, err error) error {
	pendingExitCode = code
	return err
}
