package cmd

import "github.com/spf13/cobra"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "electionmap",
	Short: "Interactive choropleth of UK general election results",
	Long: `electionmap draws UK parliamentary constituencies coloured by the
winning party of an election year. It serves a live map with hover
details and per-party vote charts, exports a static copy of the map,
and answers questions about the results over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".electionmap.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
