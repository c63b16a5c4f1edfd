package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/robinmackenzie/uk-election-map/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing election result lookups as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Stdout carries the protocol; the logger writes to stderr.
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		state, err := loadState(context.Background(), cfg, logger)
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "electionmap MCP server started on stdio (years=%v)\n", state.Years)

		return mcpserver.NewServer(state).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
