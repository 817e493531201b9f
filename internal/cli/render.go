package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [schema]",
		Short: "Render a form as HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runRender,
	}
	cmd.Flags().String(config.KeyOut, "", "write the HTML to a file instead of stdout")
	cmd.Flags().Bool("validate", false, "validate the empty form first so every error is shown")
	cmd.Flags().String("action", "", "form action URL")
	cmd.Flags().String("method", "", "form method (default post)")
	cmd.Flags().String("templates", "", "template directory replacing the embedded set (form.tpl, section.tpl, field.tpl, widgets/*.tpl)")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, err := a.load(cmd, args)
	if err != nil {
		return err
	}
	if err := requireSchema(cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	validate, _ := flags.GetBool("validate")
	action, _ := flags.GetString("action")
	method, _ := flags.GetString("method")
	templates, _ := flags.GetString("templates")

	renderer, err := html.New(html.WithTemplatesDir(templates))
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		return err
	}

	gen := orchestrator.New(orchestrator.WithRegistry(registry), orchestrator.WithLogger(logger))
	payload, err := gen.Generate(cmd.Context(), orchestrator.Request{
		Path:          cfg.Schema,
		Renderer:      renderer.Name(),
		Validate:      validate,
		RenderOptions: render.RenderOptions{Action: action, Method: method},
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd, cfg.Out, payload)
}
