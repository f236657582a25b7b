package scene

import "errors"

var (
	// ErrNoAction is returned when a keyframe write hits an object with no
	// animation container.
	ErrNoAction = errors.New("scene: object has no action")

	// ErrSharedAction is returned when a keyframe write hits an action with
	// multiple users. Ownership must be ensured before baking starts.
	ErrSharedAction = errors.New("scene: action is shared")

	// ErrUnknownChannel is returned for data paths other than location,
	// rotation_euler, or scale.
	ErrUnknownChannel = errors.New("scene: unknown channel data path")

	// ErrDuplicateObject is returned when registering an object under a
	// name that is already taken.
	ErrDuplicateObject = errors.New("scene: duplicate object name")

	// ErrUnknownObject is returned when looking up an object name that is
	// not registered.
	ErrUnknownObject = errors.New("scene: unknown object")
)
