package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

// errAborted is returned when the user interrupts the prompts
var errAborted = errors.New("fill aborted")

// prompter asks the terminal questions of the fill command
type prompter interface {
	Input(ctx context.Context, message, def string) (string, error)
	TextArea(ctx context.Context, message, help, def string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, message, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) TextArea(ctx context.Context, message, help, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	if err := survey.AskOne(&survey.Multiline{Message: message, Help: help, Default: def}, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

var (
	fillConfigFile string
	fillOutput     string
	fillFlags      config.Config
	fillPrompter   prompter = surveyPrompter{}
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill in a resume in the terminal and export it",
	Long:  "Asks for every form field in turn, starting from the seed resume, then writes the PDF to --out.",
	RunE:  runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&fillOutput, "out", "o", export.FileName, "Path to output PDF file")
	fillCmd.Flags().StringVar(&fillConfigFile, "config", "", "Path to JSON config file")
	addEngineFlags(fillCmd, &fillFlags)
	rootCmd.AddCommand(fillCmd)
}

// fieldPrompts are the labels and hints shown for each form field
var fieldPrompts = map[string]struct{ Label, Help string }{
	form.FieldName:            {"Name", ""},
	form.FieldSubtitle:        {"Subtitle", ""},
	form.FieldPhone:           {"Phone", ""},
	form.FieldEmail:           {"Email", ""},
	form.FieldAddress:         {"Address", ""},
	form.FieldCareerObjective: {"Career Objective", ""},
	form.FieldLinks:           {"Links", "One per line: name, url"},
	form.FieldEducation:       {"Education", "One per line: degree, institution, date"},
	form.FieldProjects:        {"Projects", "One per line: title, description"},
	form.FieldTechnicalSkills: {"Technical Skills", "One per line"},
	form.FieldLanguages:       {"Languages", "One per line"},
}

func runFill(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, fillConfigFile, fillFlags)
	if err != nil {
		return err
	}

	seed, err := loadSeed(cfg.Seed)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store := form.NewStore(seed, form.WithMaxImageBytes(cfg.MaxImageBytes), form.WithVerbose(cfg.Verbose))
	if err := fillStore(ctx, fillPrompter, store); err != nil {
		return err
	}

	r, _ := store.Snapshot()
	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintResume(&r)
	}
	return writePDF(ctx, r, cfg, fillOutput)
}

// fillStore asks for every field, pre-filled with the current value, and applies
// the edited answers to store. Unchanged answers are not re-parsed, so list entries
// whose text contains commas survive. A non-empty image path is loaded as the
// profile image.
func fillStore(ctx context.Context, p prompter, store *form.Store) error {
	for _, name := range form.ScalarFields {
		current, _ := store.Text(name)
		answer, err := p.Input(ctx, fieldPrompts[name].Label, current)
		if err != nil {
			return err
		}
		if answer == current {
			continue
		}
		if err := store.SetScalar(name, answer); err != nil {
			return err
		}
	}

	for _, name := range form.ListFields {
		current, _ := store.Text(name)
		meta := fieldPrompts[name]
		answer, err := p.TextArea(ctx, meta.Label, meta.Help, current)
		if err != nil {
			return err
		}
		if answer == current {
			continue
		}
		if err := store.SetList(name, answer); err != nil {
			return err
		}
	}

	path, err := p.Input(ctx, "Profile image file (leave empty to keep)", "")
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	if err := <-store.LoadImage(ctx, f, ""); err != nil {
		return fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return nil
}
