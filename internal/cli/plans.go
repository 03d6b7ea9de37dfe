package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/covset/internal/store"
)

// PlansOptions holds flags for the plans command.
type PlansOptions struct {
	*RootOptions
	Database string
}

// NewPlansCommand creates the plans command and its subcommands.
func NewPlansCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlansOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Inspect saved plans",
		Long: `List and show plans saved by generate --db and cover --db.

Example:
  covset plans --db ./plans.db
  covset plans show 3e3a... --db ./plans.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlansList(opts, cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	show := &cobra.Command{
		Use:           "show <plan-id>",
		Short:         "Print one plan's tuples",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlansShow(opts, args[0], cmd)
		},
	}
	cmd.AddCommand(show)

	return cmd
}

func openPlansStore(opts *PlansOptions) (*store.Store, error) {
	setupLogging(opts.RootOptions)
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runPlansList(opts *PlansOptions, cmd *cobra.Command) error {
	st, err := openPlansStore(opts)
	if err != nil {
		return err
	}
	defer closeStore(st)

	plans, err := st.ListPlans(plansContext(cmd))
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list plans", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		type planJSON struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			CreatedAt string `json:"created_at"`
			Arity     int    `json:"arity"`
			RowCount  int    `json:"row_count"`
		}
		rows := make([]planJSON, len(plans))
		for i, p := range plans {
			rows[i] = planJSON{
				ID:        p.ID,
				Name:      p.Name,
				CreatedAt: p.CreatedAt.Format(time.RFC3339),
				Arity:     p.Arity,
				RowCount:  p.RowCount,
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	for _, p := range plans {
		fmt.Fprintf(out, "%s  %-20s  %s  arity=%d rows=%d\n",
			p.ID, p.Name, p.CreatedAt.Format(time.RFC3339), p.Arity, p.RowCount)
	}
	return nil
}

func runPlansShow(opts *PlansOptions, id string, cmd *cobra.Command) error {
	st, err := openPlansStore(opts)
	if err != nil {
		return err
	}
	defer closeStore(st)

	plan, err := st.LoadPlan(plansContext(cmd), id)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load plan", err)
	}

	return writeTuples(cmd.OutOrStdout(), opts.Format, plan.Tuples)
}

func plansContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
