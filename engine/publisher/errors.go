package publisher

import "errors"

var (
	// ErrNotAllocated is returned when publishing before AllocateLevels or after ReleaseLevels.
	ErrNotAllocated = errors.New("publisher: level buffers not allocated")

	// ErrLevelMismatch is returned when a frame's level count differs from the allocated buffer count.
	ErrLevelMismatch = errors.New("publisher: frame does not match allocated levels")

	// ErrMissingLevelStyle is returned when a frame level has no matching style.
	ErrMissingLevelStyle = errors.New("publisher: missing level style")
)
