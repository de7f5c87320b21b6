package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clashscore",
	Short: "Clashes and hydrogen bonds in macromolecular models",
	Long: `clashscore classifies the nonbonded contacts of an atomic model into
steric clashes and hydrogen bonds, and reports the clashscore
(clashes per 1000 atoms) of the model.`,
	SilenceUsage: true,
}

//Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
