package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"segbake/internal/config"
	"segbake/internal/project"
	"segbake/internal/scene"
)

type keyframeView struct {
	Frame int     `json:"frame"`
	Value float64 `json:"value"`
}

type modifierView struct {
	Type       string `json:"type"`
	ModeBefore string `json:"mode_before"`
	ModeAfter  string `json:"mode_after"`
}

type curveView struct {
	Object    string         `json:"object"`
	Action    string         `json:"action"`
	DataPath  string         `json:"data_path"`
	Axis      string         `json:"axis"`
	Keyframes []keyframeView `json:"keyframes"`
	Modifiers []modifierView `json:"modifiers,omitempty"`
}

func newCurvesCommand(ctx *commandContext) *cobra.Command {
	var objectName string

	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Show the baked animation curves stored in the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore("", func(cfg *config.Config, store *project.Store) error {
				sc, err := ctx.loadSceneOrEmpty(cmd, cfg, store, []curveView{})
				if err != nil || sc == nil {
					return err
				}

				objects := sc.Objects()
				if objectName != "" {
					obj, err := sc.Object(objectName)
					if err != nil {
						return err
					}
					objects = []*scene.Object{obj}
				}

				views := collectCurves(objects)
				if ctx.JSONMode() {
					return writeJSON(cmd, views)
				}

				out := cmd.OutOrStdout()
				if len(views) == 0 {
					fmt.Fprintln(out, "No animation curves baked; run `segbake generate`")
					return nil
				}

				rows := make([][]string, 0, len(views))
				for _, view := range views {
					rows = append(rows, []string{
						view.Object,
						view.Action,
						view.DataPath,
						view.Axis,
						fmt.Sprintf("%d", len(view.Keyframes)),
						curveFrameRange(view.Keyframes),
						yesNo(len(view.Modifiers) > 0),
					})
				}
				table := renderTable(
					[]string{"Object", "Action", "Channel", "Axis", "Keys", "Frames", "Cyclic"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignCenter, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(out, table)
				fmt.Fprintf(out, "%d curves\n", len(views))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&objectName, "object", "", "Limit output to one object")
	return cmd
}

func collectCurves(objects []*scene.Object) []curveView {
	views := make([]curveView, 0)
	for _, obj := range objects {
		action := obj.Action()
		if action == nil {
			continue
		}
		for _, curve := range action.Curves {
			view := curveView{
				Object:   obj.Name,
				Action:   action.Name,
				DataPath: curve.DataPath,
				Axis:     axisName(curve.ArrayIndex),
			}
			for _, key := range curve.Keyframes {
				view.Keyframes = append(view.Keyframes, keyframeView{Frame: key.Frame, Value: key.Value})
			}
			for _, mod := range curve.Modifiers {
				view.Modifiers = append(view.Modifiers, modifierView{
					Type:       string(mod.Type),
					ModeBefore: string(mod.ModeBefore),
					ModeAfter:  string(mod.ModeAfter),
				})
			}
			views = append(views, view)
		}
	}
	return views
}

func curveFrameRange(keys []keyframeView) string {
	if len(keys) == 0 {
		return "-"
	}
	return fmt.Sprintf("%d-%d", keys[0].Frame, keys[len(keys)-1].Frame)
}
