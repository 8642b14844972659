package meshing

import "errors"

var (
	// ErrQueueClosed is returned by Enqueue after Shutdown.
	ErrQueueClosed = errors.New("meshing: generation queue is shut down")
	// ErrNotCompleted is returned when geometry is read before the task completed.
	ErrNotCompleted = errors.New("meshing: task not completed")
	// ErrConsumed is returned when geometry is read a second time.
	ErrConsumed = errors.New("meshing: geometry already consumed")
	// ErrInvalidLOD is returned for a negative or oversized level of detail.
	ErrInvalidLOD = errors.New("meshing: invalid level of detail")
	// ErrMalformedMesh is returned when mesh arrays disagree in length or
	// triangles reference missing vertices.
	ErrMalformedMesh = errors.New("meshing: malformed mesh arrays")
	// ErrTaskPanicked wraps a panic recovered at the task boundary.
	ErrTaskPanicked = errors.New("meshing: task panicked")
)
