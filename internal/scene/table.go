package scene

import "github.com/iliyamo/classroom-layout/internal/geometry"

// Table is one composite shape on the canvas: the table body plus the
// seats arranged around its perimeter and the occupant names bound to
// them. A Table is manipulated as a single unit for move, resize, rotate
// and select.
//
// Fields:
//  ID           – engine-assigned identifier, unique and strictly
//                 increasing within a session, never reused after deletes.
//  Number       – display number shown on the table label. Also monotonic
//                 per session; decoupled from ID so both can be exposed
//                 consistently.
//  Position     – top-left corner of the bounding box in canvas space.
//  Width/Height – body size. Fixed by capacity at creation, mutable by
//                 direct resize afterwards.
//  Rotation     – free-form rotation in degrees.
//  SeatCapacity – number of seats, always >= 1.
//  Occupants    – names in seat-assignment order; len <= SeatCapacity.
//  Seats        – perimeter offsets computed once from the capacity.
type Table struct {
	ID           uint64                `json:"id"`
	Number       int                   `json:"number"`
	Position     geometry.Point        `json:"position"`
	Width        float64               `json:"width"`
	Height       float64               `json:"height"`
	Rotation     float64               `json:"rotation"`
	SeatCapacity int                   `json:"seat_capacity"`
	Occupants    []string              `json:"occupants,omitempty"`
	Seats        []geometry.SeatOffset `json:"seats"`
}

// Center returns the midpoint of the table's bounding box.
func (t *Table) Center() geometry.Point {
	return geometry.Point{
		X: t.Position.X + t.Width/2,
		Y: t.Position.Y + t.Height/2,
	}
}

// Resize sets a new body size and recomputes the seat offsets so seats
// stay evenly spaced along the resized edges. Capacity and occupants are
// unchanged.
func (t *Table) Resize(width, height float64) {
	t.Width = width
	t.Height = height
	t.Seats = geometry.SeatOffsets(t.SeatCapacity, width, height)
}
