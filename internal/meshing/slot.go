package meshing

import "sync"

// MeshSlot keeps the latest handle for one mesh owner. Replacing the handle
// drops the older one; its mesh, when it completes, is never read.
type MeshSlot struct {
	mu      sync.Mutex
	current Handle
}

// Replace installs h and returns the superseded handle, if any.
func (s *MeshSlot) Replace(h Handle) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = h
	return prev
}

// Pending reports whether a handle is waiting to be consumed.
func (s *MeshSlot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Poll returns the mesh of the current handle once it has completed, and
// clears the slot. It never blocks.
func (s *MeshSlot) Poll() (*Mesh, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || !s.current.Completed() {
		return nil, false
	}
	m, err := s.current.Geometry()
	s.current = nil
	if err != nil {
		return nil, false
	}
	return m, true
}
