package internal

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/FuegoFro/rules-apple/internal/engine"
	"github.com/FuegoFro/rules-apple/internal/logging"
	"github.com/FuegoFro/rules-apple/internal/rules/framework"
)

var genVerbose bool
var genForce bool
var genOut string
var genGenerator string

var genCmd = &cobra.Command{
	Use:   "gen <descriptor.json>",
	Short: "Derive a descriptor and run the framework generator",
	Long: `Gen derives the bundle layout for a descriptor and invokes the framework
generator with the declared inputs, outputs and arguments. The run is
skipped when the output bundle is already up to date.`,
	Args: cobra.ExactArgs(1),
	RunE: runGen,
}

func init() {
	genCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Enable verbose generator output")
	genCmd.Flags().BoolVar(&genForce, "force", false, "Rerun the generator even when up to date")
	genCmd.Flags().StringVarP(&genOut, "out", "o", "", "Output directory (defaults to the current directory)")
	genCmd.Flags().StringVar(&genGenerator, "generator", "", "Generator executable (defaults to RULES_APPLE_GENERATOR)")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	d, err := framework.ParseFile(args[0], nil)
	if err != nil {
		return err
	}

	var stdout, stderr io.Writer = io.Discard, os.Stderr
	if genVerbose {
		stdout = os.Stdout
	}

	eng := engine.New(engine.Options{
		Generator: genGenerator,
		Dir:       genOut,
		Force:     genForce,
		Stdout:    stdout,
		Stderr:    stderr,
		Log:       logging.New("rules-apple", nil),
	})
	if err := framework.Rule(eng, *d); err != nil {
		return err
	}
	return eng.Run(context.Background())
}
