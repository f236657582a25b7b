package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"segbake/internal/config"
	"segbake/internal/project"
	"segbake/internal/rig"
	"segbake/internal/scene"
	"segbake/internal/spatial"
	"segbake/internal/textutil"
)

func newRigCommand(ctx *commandContext) *cobra.Command {
	rigCmd := &cobra.Command{
		Use:   "rig",
		Short: "Manage the display rig stored in the project",
	}

	rigCmd.AddCommand(newRigInitCommand())
	rigCmd.AddCommand(newRigImportCommand(ctx))
	rigCmd.AddCommand(newRigShowCommand(ctx))
	rigCmd.AddCommand(newRigClearCommand(ctx))

	return rigCmd
}

func newRigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample rig description file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(targetPath)
			if err != nil {
				return fmt.Errorf("resolve rig path: %w", err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("rig file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check rig path: %w", err)
				}
			}

			if err := rig.CreateSample(target); err != nil {
				return fmt.Errorf("create sample rig: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample rig to %s\n", target)
			fmt.Fprintln(out, "Import it with `segbake rig import` once the object names match your display.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "rig.yaml", "Destination for the rig file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing rig file")
	return cmd
}

func newRigImportCommand(ctx *commandContext) *cobra.Command {
	var projectPath string
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a rig description into the project database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := rig.Load(args[0])
			if err != nil {
				return err
			}
			sc, err := file.Build()
			if err != nil {
				return err
			}

			return ctx.withStore(projectPath, func(cfg *config.Config, store *project.Store) error {
				if !replace {
					exists, err := store.HasScene(cmd.Context())
					if err != nil {
						return err
					}
					if exists {
						return fmt.Errorf("project %s already contains a rig (use --replace to overwrite it)", cfg.Paths.Project)
					}
				}

				if err := store.SaveScene(cmd.Context(), sc); err != nil {
					return fmt.Errorf("save rig: %w", err)
				}

				actions := countActions(sc)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d objects into %s\n", sc.Len(), cfg.Paths.Project)
				if actions > 0 {
					fmt.Fprintf(out, "Rig carries %d shared actions\n", actions)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", "", "Project database path (overrides configuration)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing rig and its animation")
	return cmd
}

type rigObjectView struct {
	Name     string     `json:"name"`
	Label    string     `json:"label"`
	Parent   string     `json:"parent,omitempty"`
	Location [3]float64 `json:"location"`
	Rotation [3]float64 `json:"rotation_degrees"`
	Scale    [3]float64 `json:"scale"`
	Action   string     `json:"action,omitempty"`
	Users    int        `json:"action_users,omitempty"`
}

func newRigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List the objects stored in the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore("", func(cfg *config.Config, store *project.Store) error {
				sc, err := ctx.loadSceneOrEmpty(cmd, cfg, store, []rigObjectView{})
				if err != nil || sc == nil {
					return err
				}

				if ctx.JSONMode() {
					views := make([]rigObjectView, 0, sc.Len())
					for _, obj := range sc.Objects() {
						views = append(views, rigObjectViewOf(obj))
					}
					return writeJSON(cmd, views)
				}

				rows := make([][]string, 0, sc.Len())
				for _, obj := range sc.Objects() {
					rows = append(rows, rigObjectRow(obj))
				}
				table := renderTable(
					[]string{"Object", "Label", "Parent", "Location", "Rotation (deg)", "Scale", "Action", "Users"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				)
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, table)
				fmt.Fprintf(out, "%d objects at %d fps, frame start %d\n", sc.Len(), sc.FPS, sc.FrameStart)
				return nil
			})
		},
	}
}

func newRigClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the rig and its animation from the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore("", func(cfg *config.Config, store *project.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared rig and animation from %s (run history kept)\n", cfg.Paths.Project)
				return nil
			})
		},
	}
}

func rigObjectViewOf(obj *scene.Object) rigObjectView {
	view := rigObjectView{
		Name:     obj.Name,
		Label:    textutil.DisplayName(obj.Name),
		Location: vecArray(obj.Location),
		Rotation: vecArray(spatial.DegreesVec(obj.Rotation)),
		Scale:    vecArray(obj.Scale),
	}
	if obj.Parent != nil {
		view.Parent = obj.Parent.Name
	}
	if action := obj.Action(); action != nil {
		view.Action = action.Name
		view.Users = action.Users()
	}
	return view
}

func rigObjectRow(obj *scene.Object) []string {
	parent := ""
	if obj.Parent != nil {
		parent = obj.Parent.Name
	}
	actionName := ""
	users := ""
	if action := obj.Action(); action != nil {
		actionName = action.Name
		users = fmt.Sprintf("%d", action.Users())
	}
	return []string{
		obj.Name,
		textutil.DisplayName(obj.Name),
		parent,
		formatVec(obj.Location),
		formatVec(spatial.DegreesVec(obj.Rotation)),
		formatVec(obj.Scale),
		actionName,
		users,
	}
}

func vecArray(v spatial.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func countActions(sc *scene.Scene) int {
	seen := make(map[*scene.Action]struct{})
	for _, obj := range sc.Objects() {
		if action := obj.Action(); action != nil {
			seen[action] = struct{}{}
		}
	}
	return len(seen)
}
