package scene

import "fmt"

// Scene is the root container: playback parameters plus the object
// registry. FrameCurrent is the playhead; baking never moves it.
type Scene struct {
	FPS          int
	FrameStart   int
	FrameCurrent int
	objects      []*Object
	byName       map[string]*Object
}

// DefaultFPS matches the host default frame rate.
const DefaultFPS = 24

// New returns an empty scene with the playhead at the start frame.
func New(fps, frameStart int) *Scene {
	return &Scene{
		FPS:          fps,
		FrameStart:   frameStart,
		FrameCurrent: frameStart,
		byName:       make(map[string]*Object),
	}
}

// AddObject registers an object. Names are unique within a scene.
func (s *Scene) AddObject(o *Object) error {
	if _, exists := s.byName[o.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateObject, o.Name)
	}
	s.objects = append(s.objects, o)
	s.byName[o.Name] = o
	return nil
}

// Object looks up an object by name.
func (s *Scene) Object(name string) (*Object, error) {
	o, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	return o, nil
}

// Objects returns the registered objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Len returns the number of registered objects.
func (s *Scene) Len() int {
	return len(s.objects)
}
