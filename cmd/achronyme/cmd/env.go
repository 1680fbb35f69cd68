package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/eddndev/achronyme/internal/archive"
	"github.com/eddndev/achronyme/internal/evaluator"
	"github.com/eddndev/achronyme/internal/parser"
	"github.com/eddndev/achronyme/internal/value"
	"github.com/spf13/cobra"
)

func envSaveTimestamp() int64 { return time.Now().Unix() }

// envCmd groups the `.ach` file operations spec section 6 reserves for
// "I/O (spec only — out of scope)" as language builtins (save_env,
// restore_env, env_info): here they surface as CLI subcommands instead,
// since a script has no filesystem access of its own.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Save, restore, or inspect .ach environment archives",
}

func init() {
	rootCmd.AddCommand(envCmd)
}

var envSaveScript string

var envSaveCmd = &cobra.Command{
	Use:   "save <script.soc> <out.ach>",
	Short: "Run a script and save its resulting environment to an .ach archive",
	Args:  cobra.ExactArgs(2),
	RunE:  runEnvSave,
}

var (
	envSaveCompress    bool
	envSaveDescription string
)

func init() {
	envCmd.AddCommand(envSaveCmd)
	envSaveCmd.Flags().BoolVar(&envSaveCompress, "zstd", false, "zstd-compress the archive body")
	envSaveCmd.Flags().StringVar(&envSaveDescription, "description", "", "human-readable description stored in the archive metadata")
}

func runEnvSave(_ *cobra.Command, args []string) error {
	scriptPath, outPath := args[0], args[1]
	content, err := os.ReadFile(scriptPath)
	if err != nil {
		return failWith(ExitIO, fmt.Errorf("failed to read %s: %w", scriptPath, err))
	}

	p := parser.New(string(content), scriptPath)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format())
		}
		return failWith(ExitParse, fmt.Errorf("parsing failed with %d error(s)", len(errs)))
	}

	e := evaluator.New()
	env := e.NewGlobalEnvironment()
	if _, err := e.EvalProgram(program, env); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return failWith(ExitEval, fmt.Errorf("evaluation failed"))
	}

	bindings, err := archive.Save(env.Snapshot(), env.IsMutable)
	if err != nil {
		return failWith(ExitEval, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return failWith(ExitIO, fmt.Errorf("failed to create %s: %w", outPath, err))
	}
	defer out.Close()

	opts := archive.WriteOptions{
		Compress:       envSaveCompress,
		Description:    envSaveDescription,
		CreatorVersion: Version,
		Now:            envSaveTimestamp(),
	}
	if err := archive.Write(out, bindings, opts); err != nil {
		return failWith(ExitIO, err)
	}
	return nil
}

var envRestoreMode string
var envRestoreNamespace string
var envRestoreSkipChecksum bool

var envRestoreCmd = &cobra.Command{
	Use:   "restore <in.ach>",
	Short: "Restore an .ach archive and print its bindings",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnvRestore,
}

func init() {
	envCmd.AddCommand(envRestoreCmd)
	envRestoreCmd.Flags().StringVar(&envRestoreMode, "mode", "merge", "restore mode: merge, replace, or namespace")
	envRestoreCmd.Flags().StringVar(&envRestoreNamespace, "namespace", "", "prefix for namespace-mode restores")
	envRestoreCmd.Flags().BoolVar(&envRestoreSkipChecksum, "skip-checksum", false, "skip SHA-256 trailer verification")
}

func runEnvRestore(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return failWith(ExitIO, fmt.Errorf("failed to open %s: %w", args[0], err))
	}
	defer f.Close()

	a, err := archive.Read(f, envRestoreSkipChecksum)
	if err != nil {
		return failWith(ExitIO, err)
	}

	var mode archive.RestoreMode
	switch strings.ToLower(envRestoreMode) {
	case "merge":
		mode = archive.ModeMerge
	case "replace":
		mode = archive.ModeReplace
	case "namespace":
		mode = archive.ModeNamespace
	default:
		return failWith(ExitIO, fmt.Errorf("unknown restore mode %q (use merge, replace, or namespace)", envRestoreMode))
	}

	e := evaluator.New()
	lookup := e.NewGlobalEnvironment()
	env := e.NewGlobalEnvironment()
	if err := archive.Restore(a, env, lookup, mode, envRestoreNamespace); err != nil {
		return failWith(ExitEval, err)
	}

	for _, name := range a.Metadata.BindingNames {
		v, ok := env.Get(name)
		if mode == archive.ModeNamespace {
			v, ok = env.Get(envRestoreNamespace + "." + name)
		}
		if !ok {
			continue
		}
		fmt.Printf("%s = %s\n", name, value.Print(v))
	}
	return nil
}

var envInfoCmd = &cobra.Command{
	Use:   "info <in.ach>",
	Short: "Print an .ach archive's metadata without restoring it",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnvInfo,
}

func init() {
	envCmd.AddCommand(envInfoCmd)
}

func runEnvInfo(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return failWith(ExitIO, fmt.Errorf("failed to open %s: %w", args[0], err))
	}
	defer f.Close()

	a, err := archive.Read(f, false)
	if err != nil {
		return failWith(ExitIO, err)
	}

	fmt.Printf("format version: %d.%d\n", a.VersionMajor, a.VersionMinor)
	fmt.Printf("created at:     %d\n", a.CreatedAt)
	fmt.Printf("created by:     %s\n", a.Metadata.CreatedBy)
	fmt.Printf("platform:       %s\n", a.Metadata.Platform)
	fmt.Printf("bindings:       %d\n", a.Metadata.NumBindings)
	if a.Metadata.Description != "" {
		fmt.Printf("description:    %s\n", a.Metadata.Description)
	}
	if len(a.Metadata.Tags) > 0 {
		fmt.Printf("tags:           %s\n", strings.Join(a.Metadata.Tags, ", "))
	}
	fmt.Printf("names:          %s\n", strings.Join(a.Metadata.BindingNames, ", "))
	return nil
}
