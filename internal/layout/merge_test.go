package layout

import (
	"errors"
	"testing"

	"github.com/iliyamo/classroom-layout/internal/geometry"
	"github.com/iliyamo/classroom-layout/internal/scene"
)

func TestMergeCombinesCapacityAndOccupants(t *testing.T) {
	s := scene.New(nopDriver{})
	a, err := s.AddTable(4, geometry.Point{X: 100, Y: 100}, []string{"Ada", "Ben"})
	if err != nil {
		t.Fatalf("AddTable: %v", err)
	}
	b, err := s.AddTable(6, geometry.Point{X: 300, Y: 200}, []string{"Cleo"})
	if err != nil {
		t.Fatalf("AddTable: %v", err)
	}

	merged, err := Merge(s, []uint64{a.ID, b.ID})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.SeatCapacity != 10 {
		t.Errorf("capacity = %d, want 10", merged.SeatCapacity)
	}
	if want := (geometry.Point{X: 200, Y: 150}); merged.Position != want {
		t.Errorf("position = %+v, want %+v", merged.Position, want)
	}
	wantOccupants := []string{"Ada", "Ben", "Cleo"}
	if len(merged.Occupants) != len(wantOccupants) {
		t.Fatalf("occupants = %v, want %v", merged.Occupants, wantOccupants)
	}
	for i, name := range wantOccupants {
		if merged.Occupants[i] != name {
			t.Errorf("occupant %d = %q, want %q", i, merged.Occupants[i], name)
		}
	}
	if merged.Rotation != 0 {
		t.Errorf("rotation = %v, want 0", merged.Rotation)
	}
	if s.Count() != 1 {
		t.Errorf("count after merge = %d, want 1", s.Count())
	}
	if len(merged.Seats) != 10 {
		t.Errorf("seat offsets = %d, want 10", len(merged.Seats))
	}
}

func TestMergeRetiresConstituentIDs(t *testing.T) {
	s := scene.New(nopDriver{})
	a, _ := s.AddTable(4, geometry.Point{}, nil)
	b, _ := s.AddTable(4, geometry.Point{}, nil)
	merged, err := Merge(s, []uint64{a.ID, b.ID})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.ID == a.ID || merged.ID == b.ID {
		t.Errorf("merged id %d reuses a constituent id", merged.ID)
	}
	if _, ok := s.Get(a.ID); ok {
		t.Errorf("constituent %d still present", a.ID)
	}
	if merged.Number != 3 {
		t.Errorf("merged number = %d, want 3", merged.Number)
	}
}

func TestMergeValidation(t *testing.T) {
	s := scene.New(nopDriver{})
	a, _ := s.AddTable(4, geometry.Point{}, nil)
	s.AddTable(4, geometry.Point{}, nil)

	tests := []struct {
		name    string
		ids     []uint64
		wantErr error
	}{
		{"empty selection", nil, ErrSelectionTooSmall},
		{"single table", []uint64{a.ID}, ErrSelectionTooSmall},
		{"unknown id", []uint64{a.ID, 999}, scene.ErrTableNotFound},
		{"duplicate id", []uint64{a.ID, a.ID}, scene.ErrTableNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Merge(s, tt.ids); !errors.Is(err, tt.wantErr) {
				t.Errorf("Merge(%v) error = %v, want %v", tt.ids, err, tt.wantErr)
			}
			// Failed merges leave the scene untouched.
			if s.Count() != 2 {
				t.Errorf("count = %d, want 2", s.Count())
			}
		})
	}
}

func TestMergeThreeTables(t *testing.T) {
	s := scene.New(nopDriver{})
	var ids []uint64
	for i := 0; i < 3; i++ {
		tbl, _ := s.AddTable(2, geometry.Point{X: float64(i) * 90, Y: 0}, nil)
		ids = append(ids, tbl.ID)
	}
	merged, err := Merge(s, ids)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.SeatCapacity != 6 {
		t.Errorf("capacity = %d, want 6", merged.SeatCapacity)
	}
	if merged.Position.X != 90 {
		t.Errorf("centroid x = %v, want 90", merged.Position.X)
	}
}
