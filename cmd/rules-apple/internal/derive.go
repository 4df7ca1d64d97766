package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/FuegoFro/rules-apple/internal/platforms"
	"github.com/FuegoFro/rules-apple/internal/rules/framework"
)

var deriveCheck bool
var deriveJSON bool

var deriveCmd = &cobra.Command{
	Use:   "derive <descriptor.json>",
	Short: "Derive the bundle layout and generator invocation for a descriptor",
	Long: `Derive reads a framework descriptor and prints the declared input set,
output set and generator argument list. With --check, the descriptor's SDK,
minimum OS version and architectures are validated against the known Apple
platforms first.`,
	Args: cobra.ExactArgs(1),
	RunE: runDerive,
}

func init() {
	deriveCmd.Flags().BoolVar(&deriveCheck, "check", false, "Validate the descriptor against known platforms")
	deriveCmd.Flags().BoolVar(&deriveJSON, "json", false, "Print the derivation as JSON")
	rootCmd.AddCommand(deriveCmd)
}

func runDerive(cmd *cobra.Command, args []string) error {
	d, err := framework.ParseFile(args[0], nil)
	if err != nil {
		return err
	}

	if deriveCheck {
		if err := platforms.Check(d.SDK, d.MinimumOSVersion, d.Architectures); err != nil {
			return fmt.Errorf("descriptor %s: %w", args[0], err)
		}
	}

	der, err := framework.Derive(*d)
	if err != nil {
		return err
	}

	if deriveJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(der)
	}
	printDerivation(os.Stdout, der)
	return nil
}

func printDerivation(w io.Writer, der *framework.Derivation) {
	fmt.Fprintln(w, "inputs:")
	for _, in := range der.Inputs {
		fmt.Fprintf(w, "  %s\n", in)
	}
	fmt.Fprintln(w, "outputs:")
	for _, out := range der.Outputs {
		fmt.Fprintf(w, "  %s\n", out)
	}
	fmt.Fprintln(w, "args:")
	for _, arg := range der.Args {
		fmt.Fprintf(w, "  %s\n", arg)
	}
}
