package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robinmackenzie/uk-election-map/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static copy of the map",
	Long:  `Generates a self-contained static site with one map page per election year, every info panel rendered in advance.`,
	RunE:  runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 8080, "port for the local dev server")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory (defaults to site.output_dir)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	state, err := loadState(context.Background(), cfg, logger)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Site.OutputDir
	}

	generator := site.NewSiteGenerator(state, newRenderer(cfg, state), outputDir)
	generator.NotesFile = cfg.Site.NotesFile
	generator.HidePanelOnLeave = cfg.HidePanelOnLeave
	generator.Logger = logger
	pageCount, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)

	serve, _ := cmd.Flags().GetBool("serve")
	if serve {
		port, _ := cmd.Flags().GetInt("port")
		openBrowser, _ := cmd.Flags().GetBool("open")
		if err := site.Serve(outputDir, port, openBrowser, logger); err != nil {
			return fmt.Errorf("serving site: %w", err)
		}
	}

	return nil
}
