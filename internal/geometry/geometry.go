// Package geometry provides the pure placement math used by the layout
// engine: seat positions around a table perimeter, grid cell coordinates
// for initial table placement, and the centroid of a group of shapes.
// Nothing in this package holds state; every function is deterministic so
// the same inputs always reproduce the same layout.
package geometry

import "math"

// Side identifies which edge of a table a seat is attached to.
type Side string

// Sides are filled in this priority order when seats are distributed
// around a table: top and bottom first, then left and right.
const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// SeatClearance is the fixed outward offset, in canvas units, between a
// table edge and the seats attached to it.
const SeatClearance = 14.0

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SeatOffset describes one seat's position relative to its table's
// top-left corner, together with the side it sits on.
type SeatOffset struct {
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
	Side Side    `json:"side"`
}

// SideQuotas returns how many seats each side receives for the given
// capacity. Top and bottom get ceil(capacity/4) each and left and right
// get floor(capacity/4) each, but sides are filled in top, bottom, left,
// right order and each is capped by the seats still unplaced. So capacity
// 5 yields 2/2/1/0 and capacity 9 yields 3/3/2/1.
func SideQuotas(capacity int) (top, bottom, left, right int) {
	if capacity < 1 {
		return 0, 0, 0, 0
	}
	ceil := (capacity + 3) / 4
	floor := capacity / 4
	remaining := capacity
	take := func(quota int) int {
		n := quota
		if n > remaining {
			n = remaining
		}
		remaining -= n
		return n
	}
	top = take(ceil)
	bottom = take(ceil)
	left = take(floor)
	right = take(floor)
	// Whatever the quotas left unassigned goes to the right side so the
	// total always equals the capacity.
	right += remaining
	remaining = 0
	return top, bottom, left, right
}

// SeatOffsets computes the ordered seat positions around a table of the
// given size. Seats are emitted top side first, then bottom, left and
// right; occupant assignment follows this order. Within a side, seat k of
// n sits at fraction (k+1)/(n+1) along the side's length, offset outward
// from the edge by SeatClearance. Returns nil when capacity < 1.
func SeatOffsets(capacity int, tableWidth, tableHeight float64) []SeatOffset {
	if capacity < 1 {
		return nil
	}
	top, bottom, left, right := SideQuotas(capacity)
	out := make([]SeatOffset, 0, capacity)
	for k := 0; k < top; k++ {
		out = append(out, SeatOffset{
			DX:   tableWidth * sideFraction(k, top),
			DY:   -SeatClearance,
			Side: SideTop,
		})
	}
	for k := 0; k < bottom; k++ {
		out = append(out, SeatOffset{
			DX:   tableWidth * sideFraction(k, bottom),
			DY:   tableHeight + SeatClearance,
			Side: SideBottom,
		})
	}
	for k := 0; k < left; k++ {
		out = append(out, SeatOffset{
			DX:   -SeatClearance,
			DY:   tableHeight * sideFraction(k, left),
			Side: SideLeft,
		})
	}
	for k := 0; k < right; k++ {
		out = append(out, SeatOffset{
			DX:   tableWidth + SeatClearance,
			DY:   tableHeight * sideFraction(k, right),
			Side: SideRight,
		})
	}
	return out
}

// sideFraction returns the fractional position of seat k of n along a
// side: (k+1)/(n+1), so a single seat sits at the midpoint.
func sideFraction(k, n int) float64 {
	return float64(k+1) / float64(n+1)
}

// GridCell returns the top-left position for the table at the given index
// in a left-to-right, top-to-bottom grid. column = index mod columnsPerRow,
// row = index / columnsPerRow, and each cell advances by the cell size
// plus the spacing gap.
func GridCell(index, columnsPerRow int, cellWidth, cellHeight, spacing float64, origin Point) Point {
	col := index % columnsPerRow
	row := index / columnsPerRow
	return Point{
		X: origin.X + float64(col)*(cellWidth+spacing),
		Y: origin.Y + float64(row)*(cellHeight+spacing),
	}
}

// Centroid returns the arithmetic mean of the given positions. It is used
// to place a merged table at the middle of its constituents. Returns the
// zero point when the input is empty.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// TableSize derives a table's initial width and height from its seat
// capacity: the body grows along an edge as more seats line up on it.
// Sizes stay mutable afterwards through direct resize; this only fixes
// the aspect at creation time.
func TableSize(capacity int) (width, height float64) {
	const (
		base    = 60.0
		perSeat = 24.0
	)
	top, bottom, left, right := SideQuotas(capacity)
	across := math.Max(float64(top), float64(bottom))
	down := math.Max(float64(left), float64(right))
	width = base
	if across > 1 {
		width += perSeat * (across - 1)
	}
	height = base
	if down > 1 {
		height += perSeat * (down - 1)
	}
	return width, height
}
