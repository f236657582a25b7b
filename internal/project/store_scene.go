package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"segbake/internal/scene"
	"segbake/internal/spatial"
)

// SaveScene replaces the stored scene wholesale in one transaction. Objects
// sharing an action in memory share one actions row, so linked duplicates
// survive a save/load cycle.
func (s *Store) SaveScene(ctx context.Context, sc *scene.Scene) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM objects"); err != nil {
		return fmt.Errorf("clear objects: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM actions"); err != nil {
		return fmt.Errorf("clear actions: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO scene_info (id, fps, frame_start, frame_current, updated_at)
         VALUES (1, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             fps = excluded.fps,
             frame_start = excluded.frame_start,
             frame_current = excluded.frame_current,
             updated_at = excluded.updated_at`,
		sc.FPS,
		sc.FrameStart,
		sc.FrameCurrent,
		now,
	); err != nil {
		return fmt.Errorf("save scene info: %w", err)
	}

	actionIDs := make(map[*scene.Action]int64)
	for _, obj := range sc.Objects() {
		action := obj.Action()
		if action == nil {
			continue
		}
		if _, seen := actionIDs[action]; seen {
			continue
		}
		id, err := insertAction(ctx, tx, action)
		if err != nil {
			return err
		}
		actionIDs[action] = id
	}

	objectIDs := make(map[string]int64, sc.Len())
	for order, obj := range sc.Objects() {
		var actionID any
		if action := obj.Action(); action != nil {
			actionID = actionIDs[action]
		}
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO objects (
                name, action_id, rotation_mode,
                loc_x, loc_y, loc_z,
                rot_x, rot_y, rot_z,
                scale_x, scale_y, scale_z,
                sort_order
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			obj.Name,
			actionID,
			obj.RotationMode,
			obj.Location.X, obj.Location.Y, obj.Location.Z,
			obj.Rotation.X, obj.Rotation.Y, obj.Rotation.Z,
			obj.Scale.X, obj.Scale.Y, obj.Scale.Z,
			order,
		)
		if err != nil {
			return fmt.Errorf("insert object %q: %w", obj.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("object %q id: %w", obj.Name, err)
		}
		objectIDs[obj.Name] = id
	}

	// Parent links go in a second pass so insertion order never matters.
	for _, obj := range sc.Objects() {
		if obj.Parent == nil {
			continue
		}
		parentID, ok := objectIDs[obj.Parent.Name]
		if !ok {
			return fmt.Errorf("object %q: parent %q not in scene", obj.Name, obj.Parent.Name)
		}
		if _, err := tx.ExecContext(
			ctx,
			"UPDATE objects SET parent_id = ? WHERE id = ?",
			parentID,
			objectIDs[obj.Name],
		); err != nil {
			return fmt.Errorf("link parent of %q: %w", obj.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func insertAction(ctx context.Context, tx *sql.Tx, action *scene.Action) (int64, error) {
	res, err := tx.ExecContext(ctx, "INSERT INTO actions (name) VALUES (?)", action.Name)
	if err != nil {
		return 0, fmt.Errorf("insert action %q: %w", action.Name, err)
	}
	actionID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("action %q id: %w", action.Name, err)
	}

	for _, curve := range action.Curves {
		curveRes, err := tx.ExecContext(
			ctx,
			"INSERT INTO fcurves (action_id, data_path, array_index) VALUES (?, ?, ?)",
			actionID,
			curve.DataPath,
			curve.ArrayIndex,
		)
		if err != nil {
			return 0, fmt.Errorf("insert fcurve %s[%d]: %w", curve.DataPath, curve.ArrayIndex, err)
		}
		curveID, err := curveRes.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("fcurve %s[%d] id: %w", curve.DataPath, curve.ArrayIndex, err)
		}
		for _, key := range curve.Keyframes {
			if _, err := tx.ExecContext(
				ctx,
				"INSERT INTO keyframes (fcurve_id, frame, value) VALUES (?, ?, ?)",
				curveID,
				key.Frame,
				key.Value,
			); err != nil {
				return 0, fmt.Errorf("insert keyframe at frame %d: %w", key.Frame, err)
			}
		}
		for _, mod := range curve.Modifiers {
			if _, err := tx.ExecContext(
				ctx,
				"INSERT INTO fcurve_modifiers (fcurve_id, type, mode_before, mode_after) VALUES (?, ?, ?, ?)",
				curveID,
				string(mod.Type),
				string(mod.ModeBefore),
				string(mod.ModeAfter),
			); err != nil {
				return 0, fmt.Errorf("insert modifier on %s[%d]: %w", curve.DataPath, curve.ArrayIndex, err)
			}
		}
	}
	return actionID, nil
}

// LoadScene rebuilds the stored scene graph. Objects keep their saved order,
// parent links, and shared-action wiring. Returns ErrNoScene when nothing has
// been imported yet.
func (s *Store) LoadScene(ctx context.Context) (*scene.Scene, error) {
	var fps, frameStart, frameCurrent int
	row := s.db.QueryRowContext(ctx, "SELECT fps, frame_start, frame_current FROM scene_info WHERE id = 1")
	if err := row.Scan(&fps, &frameStart, &frameCurrent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoScene
		}
		return nil, fmt.Errorf("load scene info: %w", err)
	}

	sc := scene.New(fps, frameStart)
	sc.FrameCurrent = frameCurrent

	actions, err := s.loadActions(ctx)
	if err != nil {
		return nil, err
	}

	type parentLink struct {
		obj      *scene.Object
		parentID int64
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, name, parent_id, action_id, rotation_mode,
            loc_x, loc_y, loc_z,
            rot_x, rot_y, rot_z,
            scale_x, scale_y, scale_z
         FROM objects ORDER BY sort_order`,
	)
	if err != nil {
		return nil, fmt.Errorf("query objects: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*scene.Object)
	var links []parentLink
	for rows.Next() {
		var (
			id                 int64
			name               string
			parentID, actionID sql.NullInt64
			rotationMode       string
			loc, rot, scl      [3]float64
		)
		if err := rows.Scan(
			&id, &name, &parentID, &actionID, &rotationMode,
			&loc[0], &loc[1], &loc[2],
			&rot[0], &rot[1], &rot[2],
			&scl[0], &scl[1], &scl[2],
		); err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}

		obj := scene.NewObject(name)
		obj.Location = spatial.Vec3{X: loc[0], Y: loc[1], Z: loc[2]}
		obj.Rotation = spatial.Vec3{X: rot[0], Y: rot[1], Z: rot[2]}
		obj.Scale = spatial.Vec3{X: scl[0], Y: scl[1], Z: scl[2]}
		obj.RotationMode = rotationMode
		if actionID.Valid {
			action, ok := actions[actionID.Int64]
			if !ok {
				return nil, fmt.Errorf("object %q: action %d missing", name, actionID.Int64)
			}
			// AssignAction restores the shared-user count as each
			// object picks its action back up.
			obj.AssignAction(action)
		}
		if err := sc.AddObject(obj); err != nil {
			return nil, fmt.Errorf("restore object %q: %w", name, err)
		}
		byID[id] = obj
		if parentID.Valid {
			links = append(links, parentLink{obj: obj, parentID: parentID.Int64})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate objects: %w", err)
	}

	for _, link := range links {
		parent, ok := byID[link.parentID]
		if !ok {
			return nil, fmt.Errorf("object %q: parent row %d missing", link.obj.Name, link.parentID)
		}
		link.obj.Parent = parent
	}

	return sc, nil
}

func (s *Store) loadActions(ctx context.Context) (map[int64]*scene.Action, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM actions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	actions := make(map[int64]*scene.Action)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		actions[id] = scene.NewAction(name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}

	if err := s.loadCurves(ctx, actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (s *Store) loadCurves(ctx context.Context, actions map[int64]*scene.Action) error {
	rows, err := s.db.QueryContext(ctx, "SELECT id, action_id, data_path, array_index FROM fcurves ORDER BY id")
	if err != nil {
		return fmt.Errorf("query fcurves: %w", err)
	}
	defer rows.Close()

	curves := make(map[int64]*scene.FCurve)
	for rows.Next() {
		var id, actionID int64
		var dataPath string
		var arrayIndex int
		if err := rows.Scan(&id, &actionID, &dataPath, &arrayIndex); err != nil {
			return fmt.Errorf("scan fcurve: %w", err)
		}
		action, ok := actions[actionID]
		if !ok {
			return fmt.Errorf("fcurve %d: action %d missing", id, actionID)
		}
		curves[id] = action.EnsureCurve(dataPath, arrayIndex)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate fcurves: %w", err)
	}

	keyRows, err := s.db.QueryContext(ctx, "SELECT fcurve_id, frame, value FROM keyframes ORDER BY fcurve_id, frame")
	if err != nil {
		return fmt.Errorf("query keyframes: %w", err)
	}
	defer keyRows.Close()
	for keyRows.Next() {
		var curveID int64
		var frame int
		var value float64
		if err := keyRows.Scan(&curveID, &frame, &value); err != nil {
			return fmt.Errorf("scan keyframe: %w", err)
		}
		curve, ok := curves[curveID]
		if !ok {
			return fmt.Errorf("keyframe: fcurve %d missing", curveID)
		}
		curve.Insert(frame, value)
	}
	if err := keyRows.Err(); err != nil {
		return fmt.Errorf("iterate keyframes: %w", err)
	}

	modRows, err := s.db.QueryContext(ctx, "SELECT fcurve_id, type, mode_before, mode_after FROM fcurve_modifiers ORDER BY id")
	if err != nil {
		return fmt.Errorf("query fcurve modifiers: %w", err)
	}
	defer modRows.Close()
	for modRows.Next() {
		var curveID int64
		var modType, before, after string
		if err := modRows.Scan(&curveID, &modType, &before, &after); err != nil {
			return fmt.Errorf("scan fcurve modifier: %w", err)
		}
		curve, ok := curves[curveID]
		if !ok {
			return fmt.Errorf("modifier: fcurve %d missing", curveID)
		}
		curve.Modifiers = append(curve.Modifiers, scene.Modifier{
			Type:       scene.ModifierType(modType),
			ModeBefore: scene.CycleMode(before),
			ModeAfter:  scene.CycleMode(after),
		})
	}
	if err := modRows.Err(); err != nil {
		return fmt.Errorf("iterate fcurve modifiers: %w", err)
	}
	return nil
}

// HasScene reports whether a scene has been imported into the project.
func (s *Store) HasScene(ctx context.Context) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM scene_info WHERE id = 1")
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("count scene info: %w", err)
	}
	return count > 0, nil
}

// SceneInfo reports the stored playback parameters without rebuilding the
// whole graph. Returns ErrNoScene when nothing has been imported yet.
func (s *Store) SceneInfo(ctx context.Context) (fps, frameStart int, updatedAt time.Time, err error) {
	var raw string
	row := s.db.QueryRowContext(ctx, "SELECT fps, frame_start, updated_at FROM scene_info WHERE id = 1")
	if scanErr := row.Scan(&fps, &frameStart, &raw); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return 0, 0, time.Time{}, ErrNoScene
		}
		return 0, 0, time.Time{}, fmt.Errorf("load scene info: %w", scanErr)
	}
	if t, parseErr := parseTimeString(raw); parseErr == nil {
		updatedAt = t
	}
	return fps, frameStart, updatedAt, nil
}

// Clear drops the stored scene and every action, curve, and keyframe.
// Bake run history is kept.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range []string{
		"DELETE FROM objects",
		"DELETE FROM actions",
		"DELETE FROM scene_info",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear project: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}
