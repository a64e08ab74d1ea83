package fractal

import "errors"

var (
	// ErrInvalidConfiguration is returned when a Config fails validation. It is always returned before any allocation.
	ErrInvalidConfiguration = errors.New("fractal: invalid configuration")

	// ErrUseAfterRelease is returned when the fractal (or its part store) is used after its allocations were released.
	ErrUseAfterRelease = errors.New("fractal: use after release")

	// ErrNotActive is returned when an operation needs an active fractal but Activate was never called.
	ErrNotActive = errors.New("fractal: not active")

	// ErrAlreadyActive is returned by Activate when the fractal is already active. Use Reconfigure instead.
	ErrAlreadyActive = errors.New("fractal: already active")

	// ErrAllocationFailure is returned by Activate when the level allocator could not create its buffers.
	ErrAllocationFailure = errors.New("fractal: allocation failure")

	// ErrIndexOutOfRange is returned when a level or part index does not exist in the current tree.
	ErrIndexOutOfRange = errors.New("fractal: index out of range")
)
