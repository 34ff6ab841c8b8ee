package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

// resolveConfig layers the optional config file, the environment and the flags the
// user actually set, then fills the remaining gaps with defaults.
func resolveConfig(cmd *cobra.Command, path string, flags config.Config) (config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("port") {
		cfg.Port = flags.Port
	}
	if changed("engine") {
		cfg.Engine = flags.Engine
	}
	if changed("seed") {
		cfg.Seed = flags.Seed
	}
	if changed("chrome-path") {
		cfg.ChromePath = flags.ChromePath
	}
	if changed("timeout") {
		cfg.ExportTimeout = flags.ExportTimeout
	}
	if changed("no-sandbox") {
		cfg.NoSandbox = flags.NoSandbox
	}
	if changed("download-browser") {
		cfg.DownloadBrowser = flags.DownloadBrowser
	}
	if changed("verbose") {
		cfg.Verbose = flags.Verbose
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// addEngineFlags registers the flags shared by every command that renders a PDF
func addEngineFlags(cmd *cobra.Command, flags *config.Config) {
	cmd.Flags().StringVar(&flags.Engine, "engine", config.DefaultEngine, "PDF engine: native or chrome")
	cmd.Flags().StringVar(&flags.ChromePath, "chrome-path", "", "Chrome executable for the chrome engine")
	cmd.Flags().StringVar(&flags.ExportTimeout, "timeout", config.DefaultExportTimeout, "Maximum time for one PDF render")
	cmd.Flags().BoolVar(&flags.NoSandbox, "no-sandbox", false, "Disable the Chrome sandbox (needed when running as root)")
	cmd.Flags().BoolVar(&flags.DownloadBrowser, "download-browser", false, "Download Chromium when no Chrome is installed")
	cmd.Flags().StringVar(&flags.Seed, "seed", "", "JSON or YAML resume to start from (default: built-in sample)")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print detailed debug information")
}

// loadSeed returns the record at path, or the built-in sample when path is empty
func loadSeed(path string) (types.Resume, error) {
	if path == "" {
		return types.DefaultResume(), nil
	}
	r, err := schemas.LoadResume(path)
	if err != nil {
		return types.Resume{}, fmt.Errorf("failed to load seed %s: %w", path, err)
	}
	return r, nil
}

// newEngine creates the PDF engine the configuration selects
func newEngine(cfg config.Config) (export.Engine, error) {
	var opts []export.Option
	if cfg.ChromePath != "" {
		opts = append(opts, export.WithChromePath(cfg.ChromePath))
	}
	if d := cfg.Timeout(); d > 0 {
		opts = append(opts, export.WithTimeout(d))
	}
	if cfg.NoSandbox {
		opts = append(opts, export.WithNoSandbox())
	}
	if cfg.DownloadBrowser {
		opts = append(opts, export.WithAutoDownload())
	}
	engine, err := export.NewEngine(cfg.Engine, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s engine: %w", cfg.Engine, err)
	}
	return engine, nil
}

// writePDF renders r with engine into the file at out
func writePDF(ctx context.Context, r types.Resume, cfg config.Config, out string) error {
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close() //nolint:errcheck

	exporter := export.NewExporter(engine, export.WithVerboseLogging(cfg.Verbose))
	defer exporter.Close()
	exporter.Trigger(r, 1)

	start := time.Now()
	res, err := exporter.Latest(ctx)
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if _, err := res.WriteTo(f); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	if cfg.Verbose {
		count, err := res.Pages()
		if err != nil {
			log.Printf("[export] page count unavailable: %v", err)
		}
		observability.NewPrinter(os.Stdout).PrintExport(observability.ExportSummary{
			Path:     out,
			Engine:   cfg.Engine,
			Bytes:    res.Len(),
			Pages:    count,
			Duration: time.Since(start),
		})
	}
	log.Printf("[export] wrote %s (%d bytes)", out, res.Len())
	return nil
}
