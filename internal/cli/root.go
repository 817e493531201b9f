package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

// DriverFactory builds the prompt driver named by the driver setting.
type DriverFactory func(name string, out io.Writer) (tui.PromptDriver, error)

type app struct {
	configFile string
	newDriver  DriverFactory
}

// NewRootCommand returns the formstate command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{newDriver: defaultDriver})
}

func newRootCommand(a *app) *cobra.Command {
	if a.newDriver == nil {
		a.newDriver = defaultDriver
	}
	root := &cobra.Command{
		Use:   "formstate",
		Short: "Fill, preview and lint declarative forms",
		Long: `formstate loads a form schema (JSON or YAML), validates input against it
and either walks you through it in the terminal or renders it as HTML.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./formstate.yaml)")
	root.PersistentFlags().String(config.KeyLogLevel, "", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newFillCmd(a),
		newRenderCmd(a),
		newLintCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command. An aborted prompt is not an error.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		return err
	}
	return nil
}

// load merges flags, environment and config file for cmd. A positional
// schema argument wins over every other source.
func (a *app) load(cmd *cobra.Command, args []string) (*config.Config, hclog.Logger, error) {
	v := config.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, nil, fmt.Errorf("binding flags: %w", err)
	}
	cfg, err := config.Load(v, a.configFile)
	if err != nil {
		return nil, nil, err
	}
	if len(args) > 0 {
		cfg.Schema = args[0]
	}
	return cfg, newLogger(cfg.Level(), cmd.ErrOrStderr()), nil
}

func requireSchema(cfg *config.Config) error {
	if cfg.Schema == "" {
		return errors.New("no schema given: pass a path or set schema in the config")
	}
	return nil
}

func newLogger(level hclog.Level, w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "formstate",
		Level:  level,
		Output: w,
	})
}

func defaultDriver(name string, out io.Writer) (tui.PromptDriver, error) {
	switch name {
	case "", "survey":
		return tui.NewSurveyDriver(out), nil
	case "huh":
		return tui.NewHuhDriver(out), nil
	default:
		return nil, fmt.Errorf("unknown prompt driver %q", name)
	}
}

// writeOutput writes payload to path, or to the command's stdout when path
// is empty.
func writeOutput(cmd *cobra.Command, path string, payload []byte) error {
	if path == "" {
		out := cmd.OutOrStdout()
		if _, err := out.Write(payload); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", path)
	return nil
}
