package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/lint"
	"github.com/goliatone/go-formstate/pkg/schemafile"
)

func newLintCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [schema...]",
		Short: "Load schemas and report authoring warnings",
		RunE:  a.runLint,
	}
	cmd.Flags().Bool("strict", false, "exit with an error when any warning is reported")
	return cmd
}

func (a *app) runLint(cmd *cobra.Command, args []string) error {
	cfg, logger, err := a.load(cmd, nil)
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 && cfg.Schema != "" {
		paths = []string{cfg.Schema}
	}
	if len(paths) == 0 {
		return requireSchema(cfg)
	}
	strict, _ := cmd.Flags().GetBool("strict")

	out := cmd.OutOrStdout()
	total := 0
	for _, path := range paths {
		doc, err := schemafile.LoadFile(path)
		if err != nil {
			return fmt.Errorf("lint %s: %w", path, err)
		}
		warnings := lint.Check(doc.Schema)
		logger.Debug("linted", "path", path, "fields", doc.Schema.Len(), "warnings", len(warnings))
		if len(warnings) == 0 {
			fmt.Fprintf(out, "%s: ok\n", path)
			continue
		}
		for _, w := range warnings {
			fmt.Fprintf(out, "%s: %s\n", path, w)
		}
		total += len(warnings)
	}

	if strict && total > 0 {
		return fmt.Errorf("%d warning(s)", total)
	}
	return nil
}
