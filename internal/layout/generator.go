// Package layout builds scene contents: the initial arrangements derived
// from a table count or a class roster, incremental table additions, and
// the merge operator that combines selected tables into one. All
// validation happens before any scene mutation, so a failed call leaves
// the scene exactly as it was.
package layout

import (
	"errors"

	"github.com/iliyamo/classroom-layout/internal/geometry"
	"github.com/iliyamo/classroom-layout/internal/scene"
)

// Grid placement policy constants. Tables are laid out left to right in
// rows of five, stepping 80 canvas units per cell (60 for the body plus a
// 20 unit gap), starting at (100, 100).
const (
	GridColumns = 5
	GridCellW   = 60.0
	GridCellH   = 60.0
	GridSpacing = 20.0
)

// GridOrigin is the top-left corner of the placement grid.
var GridOrigin = geometry.Point{X: 100, Y: 100}

// ErrEmptyRoster is returned when roster-driven generation is requested
// with no roster entries. No empty layout is generated.
var ErrEmptyRoster = errors.New("roster is empty")

// ErrInvalidTableCount is returned when generation is requested with
// fewer than one table.
var ErrInvalidTableCount = errors.New("table count must be at least 1")

// GenerateUniform replaces the scene with tableCount tables of
// seatsPerTable seats each, placed on the grid with no occupants
// attached. Generation is not additive: the scene is cleared first and
// numbering restarts at 1.
func GenerateUniform(s *scene.Scene, tableCount, seatsPerTable int) error {
	if tableCount < 1 {
		return ErrInvalidTableCount
	}
	if seatsPerTable < 1 {
		return scene.ErrInvalidCapacity
	}
	s.Clear()
	for i := 0; i < tableCount; i++ {
		pos := geometry.GridCell(i, GridColumns, GridCellW, GridCellH, GridSpacing, GridOrigin)
		if _, err := s.AddTable(seatsPerTable, pos, nil); err != nil {
			return err
		}
	}
	return nil
}

// GenerateFromRoster replaces the scene with tableCount tables of
// seatsPerTable seats and assigns roster names to seats in order: the
// first seatsPerTable names fill table 1, the next chunk table 2, and so
// on. The last table may be under-filled. Names beyond
// tableCount*seatsPerTable are not placed; their count is returned so the
// caller can surface the drop instead of losing it silently.
func GenerateFromRoster(s *scene.Scene, roster []string, tableCount, seatsPerTable int) (unplaced int, err error) {
	if tableCount < 1 {
		return 0, ErrInvalidTableCount
	}
	if seatsPerTable < 1 {
		return 0, scene.ErrInvalidCapacity
	}
	if len(roster) == 0 {
		return 0, ErrEmptyRoster
	}
	s.Clear()
	for i := 0; i < tableCount; i++ {
		start := i * seatsPerTable
		var occupants []string
		if start < len(roster) {
			end := start + seatsPerTable
			if end > len(roster) {
				end = len(roster)
			}
			occupants = roster[start:end]
		}
		pos := geometry.GridCell(i, GridColumns, GridCellW, GridCellH, GridSpacing, GridOrigin)
		if _, err := s.AddTable(seatsPerTable, pos, occupants); err != nil {
			return 0, err
		}
	}
	capacity := tableCount * seatsPerTable
	if len(roster) > capacity {
		unplaced = len(roster) - capacity
	}
	return unplaced, nil
}

// AddTables appends n empty tables of seatsPerTable seats to the current
// scene. Unlike generation this is additive: existing tables stay put and
// the new ones take grid cells starting at the current count.
func AddTables(s *scene.Scene, n, seatsPerTable int) ([]*scene.Table, error) {
	if n < 1 {
		return nil, ErrInvalidTableCount
	}
	if seatsPerTable < 1 {
		return nil, scene.ErrInvalidCapacity
	}
	offset := s.Count()
	added := make([]*scene.Table, 0, n)
	for i := 0; i < n; i++ {
		pos := geometry.GridCell(offset+i, GridColumns, GridCellW, GridCellH, GridSpacing, GridOrigin)
		t, err := s.AddTable(seatsPerTable, pos, nil)
		if err != nil {
			return added, err
		}
		added = append(added, t)
	}
	return added, nil
}
