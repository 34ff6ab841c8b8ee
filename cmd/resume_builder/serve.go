package main

import (
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	serveConfigFile string
	serveFlags      config.Config
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resume builder web app",
	Long:  `Start an HTTP server with the resume form, the live preview and the PDF download.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&serveFlags.Port, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to JSON config file")
	serveCmd.Flags().Int64Var(&serveFlags.MaxImageBytes, "max-image-bytes", config.DefaultMaxImageBytes, "Largest accepted profile image")
	addEngineFlags(serveCmd, &serveFlags)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, serveConfigFile, serveFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-image-bytes") {
		cfg.MaxImageBytes = serveFlags.MaxImageBytes
	}

	seed, err := loadSeed(cfg.Seed)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintResume(&seed)
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close() //nolint:errcheck

	store := form.NewStore(seed, form.WithMaxImageBytes(cfg.MaxImageBytes), form.WithVerbose(cfg.Verbose))
	exporter := export.NewExporter(engine, export.WithVerboseLogging(cfg.Verbose))
	exporter.Attach(store)
	defer exporter.Close()

	srv := server.New(server.Config{
		Port:          cfg.Port,
		MaxImageBytes: cfg.MaxImageBytes,
		Verbose:       cfg.Verbose,
		RateLimit:     ratelimit.LoadConfig(),
	}, store, exporter)

	log.Printf("[server] using %s engine, open http://localhost:%d/", cfg.Engine, cfg.Port)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
