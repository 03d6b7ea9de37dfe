package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/covset/internal/cover"
	"github.com/roach88/covset/internal/space"
	"github.com/roach88/covset/internal/tuple"
)

// CoverOptions holds flags for the cover command.
type CoverOptions struct {
	*RootOptions
	Pairs     bool
	Triples   bool
	Relations []string
	Database  string
	PlanName  string
}

// NewCoverCommand creates the cover command.
func NewCoverCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CoverOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cover <space.yaml>",
		Short: "Reduce a space to a covering subset",
		Long: `Enumerate a space definition and reduce it to a subset that still
witnesses every declared relation's distinct projections. Relations
come from the definition's relations section, or from flags, which
take precedence when given.

The reduction is deterministic: the same definition always produces
the same subset. It is a greedy approximation, typically 1.5-5x the
theoretical minimum, not a minimal covering array.

Example:
  covset cover ./browser-matrix.yaml
  covset cover ./browser-matrix.yaml --pairs
  covset cover ./browser-matrix.yaml --relation 0,1 --relation 2,3
  covset cover ./browser-matrix.yaml --db ./plans.db --name pairwise`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCover(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Pairs, "pairs", false, "cover all position pairs")
	cmd.Flags().BoolVar(&opts.Triples, "triples", false, "cover all position triples")
	cmd.Flags().StringArrayVar(&opts.Relations, "relation", nil, "explicit relation as comma-separated positions (repeatable)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "save the output as a plan in this SQLite database")
	cmd.Flags().StringVar(&opts.PlanName, "name", "", "plan name when saving (defaults to the space name)")

	return cmd
}

func runCover(opts *CoverOptions, path string, cmd *cobra.Command) error {
	setupLogging(opts.RootOptions)

	def, err := space.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load space definition", err)
	}

	src, err := coverSource(opts, def)
	if err != nil {
		return err
	}

	tuples, err := pull(src, 0)
	if err != nil {
		return WrapExitError(ExitFailure, "covering failed", err)
	}
	slog.Debug("space covered", "tuples", len(tuples))

	if err := writeTuples(cmd.OutOrStdout(), opts.Format, tuples); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}

	if opts.Database != "" {
		return savePlan(cmd.Context(), opts.Database, planName(opts.PlanName, def), tuples)
	}
	return nil
}

// coverSource builds the filtered source, preferring relation flags
// over the definition's relations section.
func coverSource(opts *CoverOptions, def *space.Definition) (tuple.Source, error) {
	useFlags := opts.Pairs || opts.Triples || len(opts.Relations) > 0

	if !useFlags {
		if def.Relations == nil {
			return nil, NewExitError(ExitCommandError,
				"no relations: declare a relations section or pass --pairs/--triples/--relation")
		}
		src, err := def.BuildSource()
		if err != nil {
			return nil, WrapExitError(ExitFailure, "failed to build covered space", err)
		}
		return src, nil
	}

	comb, err := def.Build()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to build space", err)
	}

	var args []cover.RelationArg
	if opts.Pairs || opts.Triples {
		arity, err := firstArity(comb)
		if err != nil {
			return nil, WrapExitError(ExitFailure, "failed to probe space arity", err)
		}
		if opts.Pairs {
			args = append(args, cover.AllPairs(arity))
		}
		if opts.Triples {
			args = append(args, cover.AllTriples(arity))
		}
	}
	for _, raw := range opts.Relations {
		rel, err := parseRelation(raw)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --relation", err)
		}
		args = append(args, rel)
	}

	f, err := cover.New(comb, args...)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to build filter", err)
	}
	return f, nil
}

// firstArity returns the arity of the first generated tuple, zero for
// an empty space.
func firstArity(src tuple.Source) (int, error) {
	for t, err := range src.Tuples() {
		if err != nil {
			return 0, err
		}
		return len(t), nil
	}
	return 0, nil
}

// parseRelation parses "0,1,2" into a relation.
func parseRelation(raw string) (cover.Relation, error) {
	parts := strings.Split(raw, ",")
	rel := make(cover.Relation, 0, len(parts))
	for _, p := range parts {
		pos, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("position %q is not an integer", p)
		}
		if pos < 0 {
			return nil, fmt.Errorf("position %d is negative", pos)
		}
		rel = append(rel, pos)
	}
	if len(rel) == 0 {
		return nil, fmt.Errorf("relation %q is empty", raw)
	}
	return rel, nil
}
