package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cimsim",
		Short: "Annealed Coherent Ising Machine simulator",
		Long: `cimsim integrates the stochastic amplitude dynamics of a Coherent
Ising Machine whose coupling matrix anneals from a fully connected blank
Hamiltonian to a target problem Hamiltonian.

Runs are described by a YAML config plus a CSV coupling matrix; outputs
(final state, trajectory, trace) are written to the configured output
directory and recorded in a local run history.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
