package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FuegoFro/rules-apple/internal/env"
	"github.com/FuegoFro/rules-apple/internal/rules/testmatrix"
)

var expandJSON bool

var expandCmd = &cobra.Command{
	Use:   "expand <matrix.json>",
	Short: "Expand a test matrix into test targets and a suite",
	Long: `Expand reads a test-matrix spec and prints one test target per
configuration plus the suite aggregating them. The sharding switch is taken
from RULES_APPLE_TEST_SHARDING.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().BoolVar(&expandJSON, "json", false, "Print the expansion as JSON")
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	spec, err := testmatrix.ParseFile(args[0], nil)
	if err != nil {
		return err
	}

	exp, err := testmatrix.Expand(*spec, env.ShardingMode())
	if err != nil {
		return err
	}

	if expandJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(exp)
	}
	printExpansion(os.Stdout, exp)
	return nil
}

func printExpansion(w io.Writer, exp *testmatrix.Expansion) {
	for _, t := range exp.Tests {
		fmt.Fprintf(w, "test %s\n", t.Name)
		fmt.Fprintf(w, "  args: %s\n", strings.Join(t.Args, " "))
		fmt.Fprintf(w, "  tags: %s\n", strings.Join(t.Tags, " "))
		if t.Shards > 0 {
			fmt.Fprintf(w, "  shards: %d\n", t.Shards)
		}
	}
	fmt.Fprintf(w, "suite %s: %s\n", exp.Suite.Name, strings.Join(exp.Suite.Tests, " "))
}
