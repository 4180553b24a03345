package canvas

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/classroom-layout/internal/geometry"
	"github.com/iliyamo/classroom-layout/internal/scene"
)

// SnapshotVersion is the current snapshot schema version. The snapshot
// carries every table's geometry and occupant state explicitly, so a
// stored layout stays readable no matter which renderer produced it.
const SnapshotVersion = 1

// ErrUnknownSnapshotVersion is returned when a stored snapshot declares
// a version this build cannot decode.
var ErrUnknownSnapshotVersion = errors.New("unknown snapshot version")

// Snapshot is the serialized form of a full scene.
type Snapshot struct {
	Version int             `json:"version"`
	Tables  []SnapshotTable `json:"tables"`
}

// SnapshotTable is one table's persisted render and geometry state.
type SnapshotTable struct {
	ID        uint64                `json:"id"`
	Number    int                   `json:"number"`
	X         float64               `json:"x"`
	Y         float64               `json:"y"`
	Width     float64               `json:"width"`
	Height    float64               `json:"height"`
	Rotation  float64               `json:"rotation"`
	Capacity  int                   `json:"capacity"`
	Occupants []string              `json:"occupants,omitempty"`
	Seats     []geometry.SeatOffset `json:"seats"`
}

// EncodeSnapshot serializes the given tables into snapshot JSON.
func EncodeSnapshot(tables []*scene.Table) ([]byte, error) {
	snap := Snapshot{Version: SnapshotVersion, Tables: make([]SnapshotTable, 0, len(tables))}
	for _, t := range tables {
		snap.Tables = append(snap.Tables, SnapshotTable{
			ID:        t.ID,
			Number:    t.Number,
			X:         t.Position.X,
			Y:         t.Position.Y,
			Width:     t.Width,
			Height:    t.Height,
			Rotation:  t.Rotation,
			Capacity:  t.SeatCapacity,
			Occupants: t.Occupants,
			Seats:     t.Seats,
		})
	}
	return json.Marshal(snap)
}

// DecodeSnapshot parses snapshot JSON back into tables. The version is
// checked before anything else is interpreted.
func DecodeSnapshot(data []byte) ([]*scene.Table, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSnapshotVersion, snap.Version)
	}
	out := make([]*scene.Table, 0, len(snap.Tables))
	for _, st := range snap.Tables {
		out = append(out, &scene.Table{
			ID:           st.ID,
			Number:       st.Number,
			Position:     geometry.Point{X: st.X, Y: st.Y},
			Width:        st.Width,
			Height:       st.Height,
			Rotation:     st.Rotation,
			SeatCapacity: st.Capacity,
			Occupants:    st.Occupants,
			Seats:        st.Seats,
		})
	}
	return out, nil
}
