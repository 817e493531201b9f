package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

func newFillCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill [schema]",
		Short: "Fill a form interactively and print the submitted data",
		Long: `Prompts for every enabled field in schema order, re-asks fields that fail
validation, and prints the submitted data once the form is valid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runFill,
	}
	cmd.Flags().String(config.KeyRenderer, "", "renderer: tui or html")
	cmd.Flags().String(config.KeyDriver, "", "prompt driver: survey or huh")
	cmd.Flags().String(config.KeyOutput, "", "output format: json, form or pretty")
	cmd.Flags().String(config.KeyOut, "", "write the result to a file instead of stdout")
	return cmd
}

func (a *app) runFill(cmd *cobra.Command, args []string) error {
	cfg, logger, err := a.load(cmd, args)
	if err != nil {
		return err
	}
	if err := requireSchema(cfg); err != nil {
		return err
	}

	driver, err := a.newDriver(cfg.Driver, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	tuiRenderer, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormat(cfg.Output)),
		tui.WithLogger(logger.Named("tui")),
	)
	if err != nil {
		return err
	}
	htmlRenderer, err := html.New()
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(tuiRenderer, htmlRenderer)
	if err != nil {
		return err
	}

	gen := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(tuiRenderer.Name()),
		orchestrator.WithLogger(logger),
	)
	payload, err := gen.Generate(cmd.Context(), orchestrator.Request{
		Path:     cfg.Schema,
		Renderer: cfg.Renderer,
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd, cfg.Out, payload)
}
