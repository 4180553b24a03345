package layout

import (
	"errors"
	"fmt"

	"github.com/iliyamo/classroom-layout/internal/geometry"
	"github.com/iliyamo/classroom-layout/internal/scene"
)

// ErrSelectionTooSmall is returned when a merge is requested with fewer
// than two selected tables. Nothing is mutated.
var ErrSelectionTooSmall = errors.New("merge needs at least 2 selected tables")

// Merge combines the selected tables into one. The merged table's
// capacity is the sum of the constituents' capacities, its position is
// the centroid of their positions, and occupant names are concatenated
// in selection order. The constituents are removed and their ids retired;
// the merged table gets a fresh id and the next display number. Its size
// follows the combined capacity policy and it starts unrotated.
//
// All ids are resolved before anything is removed, so an unknown or
// duplicate id fails the whole merge with the scene untouched.
func Merge(s *scene.Scene, ids []uint64) (*scene.Table, error) {
	if len(ids) < 2 {
		return nil, ErrSelectionTooSmall
	}
	selected := make([]*scene.Table, 0, len(ids))
	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %d in selection", scene.ErrTableNotFound, id)
		}
		seen[id] = true
		t, ok := s.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: id %d", scene.ErrTableNotFound, id)
		}
		selected = append(selected, t)
	}

	capacity := 0
	points := make([]geometry.Point, 0, len(selected))
	var occupants []string
	for _, t := range selected {
		capacity += t.SeatCapacity
		points = append(points, t.Position)
		occupants = append(occupants, t.Occupants...)
	}

	for _, t := range selected {
		if err := s.RemoveTable(t.ID); err != nil {
			return nil, err
		}
	}
	return s.AddTable(capacity, geometry.Centroid(points), occupants)
}
