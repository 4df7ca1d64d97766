package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rules-apple",
	Short: "rules-apple derives Apple framework build declarations",
	Long: `rules-apple turns compact framework descriptors and test-matrix specs
into complete, deterministic build declarations, and can run the framework
generator over them locally.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
