package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/covset/internal/space"
	"github.com/roach88/covset/internal/store"
	"github.com/roach88/covset/internal/tuple"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Limit    int
	Database string
	PlanName string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <space.yaml>",
		Short: "Enumerate a space definition in full",
		Long: `Enumerate every tuple of a space definition, ignoring any declared
relations. Output order is deterministic and matches declaration order:
outer factors vary slowest.

Example:
  covset generate ./browser-matrix.yaml
  covset generate ./browser-matrix.yaml --limit 100 --format json
  covset generate ./browser-matrix.yaml --db ./plans.db --name smoke`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "stop after this many tuples (0 = no limit)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "save the output as a plan in this SQLite database")
	cmd.Flags().StringVar(&opts.PlanName, "name", "", "plan name when saving (defaults to the space name)")

	return cmd
}

func runGenerate(opts *GenerateOptions, path string, cmd *cobra.Command) error {
	setupLogging(opts.RootOptions)

	def, err := space.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load space definition", err)
	}

	comb, err := def.Build()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build space", err)
	}

	tuples, err := pull(comb, opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, "generation failed", err)
	}
	slog.Debug("space enumerated", "tuples", len(tuples))

	if err := writeTuples(cmd.OutOrStdout(), opts.Format, tuples); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}

	if opts.Database != "" {
		return savePlan(cmd.Context(), opts.Database, planName(opts.PlanName, def), tuples)
	}
	return nil
}

// pull drains a source, stopping after limit tuples when limit is
// positive.
func pull(src tuple.Source, limit int) ([]tuple.Tuple, error) {
	var out []tuple.Tuple
	for t, err := range src.Tuples() {
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func planName(flag string, def *space.Definition) string {
	if flag != "" {
		return flag
	}
	if def.Name != "" {
		return def.Name
	}
	return "unnamed"
}

func savePlan(ctx context.Context, dbPath, name string, tuples []tuple.Tuple) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	id, err := st.SavePlan(ctx, name, tuple.Fixed(tuples))
	if err != nil {
		return WrapExitError(ExitFailure, "failed to save plan", err)
	}
	slog.Info("plan saved", "id", id, "name", name, "rows", len(tuples))
	return nil
}
