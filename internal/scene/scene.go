// Package scene owns the authoritative set of tables for one editing
// session. The Scene is the single source of truth for what is on the
// canvas right now; every membership change is mirrored to the rendering
// driver before the mutating call returns, so the model and the live
// render never drift apart.
package scene

import (
	"errors"

	"github.com/iliyamo/classroom-layout/internal/geometry"
)

// ErrInvalidCapacity is returned when a table is requested with fewer
// than one seat. Callers validate their inputs first, so hitting this is
// a defensive check rather than a primary error path.
var ErrInvalidCapacity = errors.New("seat capacity must be at least 1")

// ErrTableNotFound is returned when an operation names a table id that is
// not in the scene. Removal treats it as non-fatal so deletes stay
// idempotent.
var ErrTableNotFound = errors.New("table not found")

// Driver is the slice of the canvas capability the scene needs: keeping
// the rendered shape set in sync with the model. The full driver surface,
// including selection and events, lives in the canvas package.
type Driver interface {
	Add(t *Table)
	Remove(t *Table)
	Clear()
}

// Scene holds the current tables in creation order and assigns fresh ids
// and display numbers. It is not safe for concurrent use; the engine
// serializes access.
type Scene struct {
	driver Driver
	tables map[uint64]*Table
	order  []uint64

	nextID     uint64 // sole source of new ids, never reused
	nextNumber int    // display numbering, monotonic per session
}

// New returns an empty scene bound to the given driver.
func New(driver Driver) *Scene {
	return &Scene{
		driver:     driver,
		tables:     make(map[uint64]*Table),
		nextID:     1,
		nextNumber: 1,
	}
}

// AddTable creates a table with the next id and display number, computes
// its size and seat offsets from the capacity, and issues a render-add to
// the driver before returning. Occupants beyond the capacity are not
// placed. Fails only when capacity < 1.
func (s *Scene) AddTable(capacity int, pos geometry.Point, occupants []string) (*Table, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if len(occupants) > capacity {
		occupants = occupants[:capacity]
	}
	w, h := geometry.TableSize(capacity)
	t := &Table{
		ID:           s.nextID,
		Number:       s.nextNumber,
		Position:     pos,
		Width:        w,
		Height:       h,
		SeatCapacity: capacity,
		Occupants:    append([]string(nil), occupants...),
		Seats:        geometry.SeatOffsets(capacity, w, h),
	}
	s.nextID++
	s.nextNumber++
	s.tables[t.ID] = t
	s.order = append(s.order, t.ID)
	s.driver.Add(t)
	return t, nil
}

// RemoveTable removes the table with the given id and issues the matching
// render-remove. Returns ErrTableNotFound when the id is absent; the
// scene is left unchanged in that case, so a double delete is harmless.
func (s *Scene) RemoveTable(id uint64) error {
	t, ok := s.tables[id]
	if !ok {
		return ErrTableNotFound
	}
	delete(s.tables, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.driver.Remove(t)
	return nil
}

// Get returns the table with the given id, if present.
func (s *Scene) Get(id uint64) (*Table, bool) {
	t, ok := s.tables[id]
	return t, ok
}

// Tables returns the current tables in creation order.
func (s *Scene) Tables() []*Table {
	out := make([]*Table, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tables[id])
	}
	return out
}

// Count returns the number of tables currently in the scene.
func (s *Scene) Count() int {
	return len(s.tables)
}

// TotalSeats sums the seat capacity of every table in the scene.
func (s *Scene) TotalSeats() int {
	total := 0
	for _, t := range s.tables {
		total += t.SeatCapacity
	}
	return total
}

// Clear empties the scene, issues a driver clear and resets both
// counters. A cleared layout starts numbering from 1 again.
func (s *Scene) Clear() {
	s.tables = make(map[uint64]*Table)
	s.order = nil
	s.nextID = 1
	s.nextNumber = 1
	s.driver.Clear()
}
