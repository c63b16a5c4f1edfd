package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robinmackenzie/uk-election-map/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize electionmap configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that finds the boundary and result files and writes a .electionmap.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.RunWizard(cfgFile); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", cfgFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
