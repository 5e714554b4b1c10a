package component

import "errors"

var (
	// ErrConfiguration marks an actor that cannot be spawned: missing bounds,
	// non-positive health, speed or cooldown.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidArgument marks a caller contract violation such as non-positive damage.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNullTarget marks a tick in which no target could be resolved.
	ErrNullTarget = errors.New("null target")
)
