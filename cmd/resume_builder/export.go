package main

import (
	"context"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	exportConfigFile string
	exportOutput     string
	exportFlags      config.Config
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a resume to a PDF file",
	Long:  "Renders the seed resume (or the built-in sample) with the selected engine and writes the PDF to --out.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", export.FileName, "Path to output PDF file")
	exportCmd.Flags().StringVar(&exportConfigFile, "config", "", "Path to JSON config file")
	addEngineFlags(exportCmd, &exportFlags)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, exportConfigFile, exportFlags)
	if err != nil {
		return err
	}

	r, err := loadSeed(cfg.Seed)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		p := observability.NewPrinter(os.Stdout)
		p.PrintResume(&r)
		p.PrintDocument(rendering.BuildDocument(r))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return writePDF(ctx, r, cfg, exportOutput)
}
