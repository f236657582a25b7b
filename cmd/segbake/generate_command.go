package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"segbake/internal/bake"
	"segbake/internal/config"
	"segbake/internal/logging"
	"segbake/internal/project"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Bake the digit timeline into the project's segment curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(projectPath, func(cfg *config.Config, store *project.Store) error {
				logger, err := bakeLogger(cfg)
				if err != nil {
					return err
				}

				orch, err := bake.New(cfg, store, logger)
				if err != nil {
					return err
				}

				summary, err := orch.Run(cmd.Context())
				if err != nil {
					if errors.Is(err, project.ErrNoScene) {
						return fmt.Errorf("project %s has no rig; import one with `segbake rig import`", cfg.Paths.Project)
					}
					return err
				}

				if ctx.JSONMode() {
					return writeJSON(cmd, summary)
				}

				out := cmd.OutOrStdout()
				loop := ""
				if summary.Cyclic {
					loop = " (cyclic)"
				}
				fmt.Fprintf(out, "Generated animation for %d digits%s\n", summary.DigitsProcessed, loop)
				fmt.Fprintf(out, "Run ID: %s\n", summary.RunID)
				fmt.Fprintf(out, "Mode: %s\n", summary.Mode)
				fmt.Fprintf(out, "Frames: %d-%d at %d fps\n", summary.StartFrame, summary.LastKeyFrame, summary.FPS)
				fmt.Fprintf(out, "Timing: %d frame hold, %d frame transition\n", summary.HoldFrames, summary.TransitionFrames)
				fmt.Fprintf(out, "Keyframe events: %d\n", summary.Events)
				fmt.Fprintf(out, "Curves marked cyclic: %d\n", summary.CurvesMarked)
				fmt.Fprintf(out, "Actions: %d created, %d copied, %d already owned\n",
					summary.ActionsCreated, summary.ActionsCopied, summary.ActionsOwned)
				if len(summary.SeamIssues) > 0 {
					colorize := shouldColorize(out)
					fmt.Fprintln(out, renderStatusLine("Seam check", statusWarn,
						fmt.Sprintf("%d curves mismatch at the loop seam", len(summary.SeamIssues)), colorize))
					for _, issue := range summary.SeamIssues {
						fmt.Fprintf(out, "    segment %s axis %s: first %.6f last %.6f\n",
							issue.Segment, axisName(issue.Axis), issue.First, issue.Last)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", "", "Project database path (overrides configuration)")
	return cmd
}

// bakeLogger logs to stderr and the configured log file, keeping stdout free
// for the summary or JSON document.
func bakeLogger(cfg *config.Config) (*slog.Logger, error) {
	paths := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		paths = append(paths, filepath.Join(cfg.Paths.LogDir, "segbake.log"))
	}
	return logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      paths,
		ErrorOutputPaths: paths,
	})
}
