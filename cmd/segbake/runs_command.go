package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"segbake/internal/config"
	"segbake/internal/project"
)

type runView struct {
	RunID        string `json:"run_id"`
	StartedAt    string `json:"started_at"`
	FinishedAt   string `json:"finished_at,omitempty"`
	Mode         string `json:"mode"`
	Digits       int    `json:"digits"`
	Cyclic       bool   `json:"cyclic"`
	Events       int    `json:"events"`
	CurvesMarked int    `json:"curves_marked"`
	SeamIssues   int    `json:"seam_issues"`
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded bake runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore("", func(cfg *config.Config, store *project.Store) error {
				runs, err := store.Runs(cmd.Context(), limit)
				if err != nil {
					return err
				}

				if ctx.JSONMode() {
					views := make([]runView, 0, len(runs))
					for _, run := range runs {
						views = append(views, runViewOf(run))
					}
					return writeJSON(cmd, views)
				}

				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No bake runs recorded")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortRunID(run.RunID),
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
						runDuration(run),
						run.Mode,
						fmt.Sprintf("%d", run.Digits),
						yesNo(run.Cyclic),
						fmt.Sprintf("%d", run.Events),
						fmt.Sprintf("%d", run.CurvesMarked),
						fmt.Sprintf("%d", run.SeamIssues),
					})
				}
				table := renderTable(
					[]string{"Run", "Started", "Duration", "Mode", "Digits", "Cyclic", "Events", "Curves", "Seams"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}

func runViewOf(run project.Run) runView {
	view := runView{
		RunID:        run.RunID,
		StartedAt:    run.StartedAt.UTC().Format(time.RFC3339),
		Mode:         run.Mode,
		Digits:       run.Digits,
		Cyclic:       run.Cyclic,
		Events:       run.Events,
		CurvesMarked: run.CurvesMarked,
		SeamIssues:   run.SeamIssues,
	}
	if run.FinishedAt != nil {
		view.FinishedAt = run.FinishedAt.UTC().Format(time.RFC3339)
	}
	return view
}

func runDuration(run project.Run) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
