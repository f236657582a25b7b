package testsupport

import (
	"testing"

	"segbake/internal/config"
	"segbake/internal/scene"
)

// SegmentNames are the object names used by the segment scene fixture,
// ordered to match display positions A through G.
var SegmentNames = [7]string{"SegA", "SegB", "SegC", "SegD", "SegE", "SegF", "SegG"}

// NewSegmentScene builds a scene with a Display root and one child object
// per display position.
func NewSegmentScene(t testing.TB) *scene.Scene {
	t.Helper()

	sc := scene.New(scene.DefaultFPS, 1)
	root := scene.NewObject("Display")
	if err := sc.AddObject(root); err != nil {
		t.Fatalf("add root: %v", err)
	}
	for _, name := range SegmentNames {
		obj := scene.NewObject(name)
		obj.Parent = root
		if err := sc.AddObject(obj); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	return sc
}

// BindSegments points the config's display bindings at the segment scene
// fixture objects.
func BindSegments(cfg *config.Config) {
	cfg.Display.Segments = config.Segments{
		A: SegmentNames[0],
		B: SegmentNames[1],
		C: SegmentNames[2],
		D: SegmentNames[3],
		E: SegmentNames[4],
		F: SegmentNames[5],
		G: SegmentNames[6],
	}
}
