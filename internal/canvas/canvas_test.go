package canvas

import (
	"testing"

	"github.com/iliyamo/classroom-layout/internal/geometry"
	"github.com/iliyamo/classroom-layout/internal/scene"
)

func addTable(t *testing.T, s *scene.Scene, capacity int, occupants ...string) *scene.Table {
	t.Helper()
	tbl, err := s.AddTable(capacity, geometry.Point{}, occupants)
	if err != nil {
		t.Fatalf("AddTable: %v", err)
	}
	return tbl
}

func TestSetSelectionIgnoresUnknownIDs(t *testing.T) {
	cv := NewHeadless()
	s := scene.New(cv)
	a := addTable(t, s, 4)
	b := addTable(t, s, 4)

	cv.SetSelection(a.ID, 999, b.ID)
	sel := cv.ActiveSelection()
	if len(sel) != 2 {
		t.Fatalf("selection = %d tables, want 2", len(sel))
	}
	if sel[0].ID != a.ID || sel[1].ID != b.ID {
		t.Errorf("selection order = %d, %d, want %d, %d", sel[0].ID, sel[1].ID, a.ID, b.ID)
	}
}

func TestSelectionChangedFires(t *testing.T) {
	cv := NewHeadless()
	s := scene.New(cv)
	a := addTable(t, s, 4)

	var got []*scene.Table
	calls := 0
	cv.OnSelectionChanged(func(sel []*scene.Table) {
		calls++
		got = sel
	})
	cv.SetSelection(a.ID)
	if calls != 1 {
		t.Fatalf("handler fired %d times, want 1", calls)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("handler saw %v, want table %d", got, a.ID)
	}
}

func TestRemoveDropsFromSelection(t *testing.T) {
	cv := NewHeadless()
	s := scene.New(cv)
	a := addTable(t, s, 4)
	b := addTable(t, s, 4)

	cv.SetSelection(a.ID, b.ID)
	if err := s.RemoveTable(a.ID); err != nil {
		t.Fatalf("RemoveTable: %v", err)
	}
	sel := cv.ActiveSelection()
	if len(sel) != 1 || sel[0].ID != b.ID {
		t.Errorf("selection after remove = %v, want only table %d", sel, b.ID)
	}
}

func TestPressDeleteKeyRequiresSelection(t *testing.T) {
	cv := NewHeadless()
	s := scene.New(cv)
	a := addTable(t, s, 4)

	fired := 0
	cv.OnDeleteKey(func() { fired++ })

	// No selection: the key press is a no-op.
	cv.PressDeleteKey()
	if fired != 0 {
		t.Fatalf("delete handler fired with empty selection")
	}

	cv.SetSelection(a.ID)
	cv.PressDeleteKey()
	if fired != 1 {
		t.Errorf("delete handler fired %d times, want 1", fired)
	}
}

func TestClearEmptiesSelection(t *testing.T) {
	cv := NewHeadless()
	s := scene.New(cv)
	a := addTable(t, s, 4)
	cv.SetSelection(a.ID)
	s.Clear()
	if len(cv.ActiveSelection()) != 0 {
		t.Errorf("selection survived clear")
	}
}
