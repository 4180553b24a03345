package geometry

import (
	"math"
	"testing"
)

func TestSideQuotas(t *testing.T) {
	tests := []struct {
		capacity                 int
		top, bottom, left, right int
	}{
		{1, 1, 0, 0, 0},
		{2, 1, 1, 0, 0},
		{4, 1, 1, 1, 1},
		{5, 2, 2, 1, 0},
		{6, 2, 2, 1, 1},
		{9, 3, 3, 2, 1},
		{12, 3, 3, 3, 3},
	}
	for _, tt := range tests {
		top, bottom, left, right := SideQuotas(tt.capacity)
		if top != tt.top || bottom != tt.bottom || left != tt.left || right != tt.right {
			t.Errorf("SideQuotas(%d) = %d/%d/%d/%d, want %d/%d/%d/%d",
				tt.capacity, top, bottom, left, right, tt.top, tt.bottom, tt.left, tt.right)
		}
		if top+bottom+left+right != tt.capacity {
			t.Errorf("SideQuotas(%d) does not sum to capacity", tt.capacity)
		}
	}
}

func TestSeatOffsetsCountAndDistinct(t *testing.T) {
	for _, capacity := range []int{1, 4, 5, 6, 9} {
		offs := SeatOffsets(capacity, 100, 80)
		if len(offs) != capacity {
			t.Fatalf("SeatOffsets(%d) returned %d offsets", capacity, len(offs))
		}
		seen := map[[2]float64]bool{}
		for _, o := range offs {
			key := [2]float64{o.DX, o.DY}
			if seen[key] {
				t.Errorf("SeatOffsets(%d) produced duplicate offset %+v", capacity, o)
			}
			seen[key] = true
		}
	}
}

func TestSeatOffsetsSpacing(t *testing.T) {
	// Two seats on top of a 100-wide table sit at 1/3 and 2/3 of the width.
	offs := SeatOffsets(5, 100, 80)
	if offs[0].Side != SideTop || offs[1].Side != SideTop {
		t.Fatalf("first two seats should be on top, got %v/%v", offs[0].Side, offs[1].Side)
	}
	if math.Abs(offs[0].DX-100.0/3) > 1e-9 || math.Abs(offs[1].DX-200.0/3) > 1e-9 {
		t.Errorf("top seat fractions wrong: %v, %v", offs[0].DX, offs[1].DX)
	}
	if offs[0].DY != -SeatClearance {
		t.Errorf("top seat clearance = %v, want %v", offs[0].DY, -SeatClearance)
	}
}

func TestSeatOffsetsInvalidCapacity(t *testing.T) {
	if got := SeatOffsets(0, 60, 60); got != nil {
		t.Errorf("SeatOffsets(0) = %v, want nil", got)
	}
}

func TestGridCell(t *testing.T) {
	origin := Point{X: 100, Y: 100}
	tests := []struct {
		index int
		want  Point
	}{
		{0, Point{100, 100}},
		{1, Point{180, 100}},
		{4, Point{420, 100}},
		{5, Point{100, 180}},
		{7, Point{260, 180}},
	}
	for _, tt := range tests {
		got := GridCell(tt.index, 5, 60, 60, 20, origin)
		if got != tt.want {
			t.Errorf("GridCell(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid([]Point{{0, 0}, {100, 40}})
	if got != (Point{50, 20}) {
		t.Errorf("Centroid = %+v, want {50 20}", got)
	}
	if Centroid(nil) != (Point{}) {
		t.Errorf("Centroid(nil) should be the zero point")
	}
}

func TestTableSizeGrowsWithCapacity(t *testing.T) {
	w4, h4 := TableSize(4)
	if w4 != 60 || h4 != 60 {
		t.Errorf("TableSize(4) = %vx%v, want 60x60", w4, h4)
	}
	w10, h10 := TableSize(10)
	if w10 <= w4 || h10 <= h4 {
		t.Errorf("TableSize(10) = %vx%v, should exceed TableSize(4)", w10, h10)
	}
}
