package rig

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"segbake/internal/scene"
	"segbake/internal/spatial"
)

//go:embed sample_rig.yaml
var sampleRig string

// ErrNoObjects is returned for rig files with an empty object list.
var ErrNoObjects = errors.New("rig: no objects defined")

// SceneSettings carries the playback parameters of the rig's scene.
type SceneSettings struct {
	FPS        int `yaml:"fps"`
	FrameStart int `yaml:"frame_start"`
}

// ObjectSpec describes one scene object. Transform channels are optional:
// a missing location or rotation stays zero and a missing scale defaults
// to unit. Rotation is in degrees. Objects naming the same action share
// one animation container, the way linked duplicates do.
type ObjectSpec struct {
	Name     string      `yaml:"name"`
	Parent   string      `yaml:"parent,omitempty"`
	Location *[3]float64 `yaml:"location,omitempty"`
	Rotation *[3]float64 `yaml:"rotation,omitempty"`
	Scale    *[3]float64 `yaml:"scale,omitempty"`
	Action   string      `yaml:"action,omitempty"`
}

// File is a parsed rig description.
type File struct {
	Scene   SceneSettings `yaml:"scene"`
	Objects []ObjectSpec  `yaml:"objects"`
}

// Load reads and parses a rig file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rig: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rig %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// Parse decodes a rig description, fills defaults, and validates it.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rig: %w", err)
	}
	if f.Scene.FPS <= 0 {
		f.Scene.FPS = scene.DefaultFPS
	}
	if f.Scene.FrameStart == 0 {
		f.Scene.FrameStart = 1
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the object list for empty or duplicate names, dangling
// parent references, and parent cycles.
func (f *File) Validate() error {
	if len(f.Objects) == 0 {
		return ErrNoObjects
	}
	byName := make(map[string]int, len(f.Objects))
	for i, obj := range f.Objects {
		if obj.Name == "" {
			return fmt.Errorf("rig: object %d has no name", i)
		}
		if _, dup := byName[obj.Name]; dup {
			return fmt.Errorf("rig: duplicate object name %q", obj.Name)
		}
		byName[obj.Name] = i
	}
	for _, obj := range f.Objects {
		if obj.Parent == "" {
			continue
		}
		if _, ok := byName[obj.Parent]; !ok {
			return fmt.Errorf("rig: object %q references unknown parent %q", obj.Name, obj.Parent)
		}
	}
	// A parent chain longer than the object count must revisit a node.
	for _, obj := range f.Objects {
		current := obj
		for steps := 0; current.Parent != ""; steps++ {
			if steps >= len(f.Objects) {
				return fmt.Errorf("rig: parent cycle through %q", obj.Name)
			}
			current = f.Objects[byName[current.Parent]]
		}
	}
	return nil
}

// Build creates a scene holding the rig's objects with parent links
// resolved and shared actions wired up.
func (f *File) Build() (*scene.Scene, error) {
	sc := scene.New(f.Scene.FPS, f.Scene.FrameStart)
	actions := make(map[string]*scene.Action)

	for _, spec := range f.Objects {
		o := scene.NewObject(spec.Name)
		if spec.Location != nil {
			o.Location = vec(*spec.Location)
		}
		if spec.Rotation != nil {
			o.Rotation = spatial.RadiansVec(vec(*spec.Rotation))
		}
		if spec.Scale != nil {
			o.Scale = vec(*spec.Scale)
		}
		if spec.Action != "" {
			a, ok := actions[spec.Action]
			if !ok {
				a = scene.NewAction(spec.Action)
				actions[spec.Action] = a
			}
			o.AssignAction(a)
		}
		if err := sc.AddObject(o); err != nil {
			return nil, err
		}
	}

	for _, spec := range f.Objects {
		if spec.Parent == "" {
			continue
		}
		o, err := sc.Object(spec.Name)
		if err != nil {
			return nil, err
		}
		parent, err := sc.Object(spec.Parent)
		if err != nil {
			return nil, fmt.Errorf("rig: object %q: %w", spec.Name, err)
		}
		o.Parent = parent
	}

	return sc, nil
}

func vec(v [3]float64) spatial.Vec3 {
	return spatial.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// CreateSample writes the embedded sample rig to the given path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create rig directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleRig), 0o644); err != nil {
		return fmt.Errorf("write sample rig: %w", err)
	}
	return nil
}
