// Package engine implements the layout editor session: one Editor per
// class being arranged, owning the scene, driving the canvas, persisting
// saves through the class repository and watching the roster for
// changes. All operations are serialized by a mutex because both HTTP
// handlers and the roster poll goroutine enter the editor.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/classroom-layout/internal/canvas"
	"github.com/iliyamo/classroom-layout/internal/layout"
	"github.com/iliyamo/classroom-layout/internal/model"
	"github.com/iliyamo/classroom-layout/internal/queue"
	"github.com/iliyamo/classroom-layout/internal/repository"
	"github.com/iliyamo/classroom-layout/internal/scene"
)

// ErrClosed is returned by operations on an editor whose session has
// been torn down.
var ErrClosed = errors.New("editor is closed")

// Events receives domain events the editor emits. Implementations must
// not block; failures are the implementation's problem to log. A nil
// Events silently drops everything.
type Events interface {
	LayoutSaved(ctx context.Context, ev queue.LayoutSavedEvent)
	RosterChanged(ctx context.Context, ev queue.RosterChangedEvent)
}

// Editor is one editing session for one class. It owns the scene and
// keeps it consistent with the canvas driver after every mutation.
type Editor struct {
	mu     sync.Mutex
	closed bool

	code   string
	scene  *scene.Scene
	canvas canvas.Canvas
	repo   *repository.ClassRepo
	events Events

	// Last roster-generation parameters, reused when the poll detects a
	// roster size change and regenerates.
	rosterLen     int
	genTables     int
	genSeats      int
	rosterApplied bool

	watcher *watcher
}

// Options tune an editor session.
type Options struct {
	// PollInterval is how often the roster size is re-read from
	// storage. Zero disables the poll entirely.
	PollInterval time.Duration
	// Events receives layout.saved and roster.changed notifications.
	Events Events
}

// Open creates an editor for the given class code. It fails with
// repository.ErrClassNotFound when the code is unregistered. The delete
// key on the canvas removes the active selection; the roster poll, when
// enabled, runs until Close.
func Open(ctx context.Context, code string, repo *repository.ClassRepo, cv canvas.Canvas, opts Options) (*Editor, error) {
	cls, err := repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	e := &Editor{
		code:      cls.Code,
		canvas:    cv,
		repo:      repo,
		events:    opts.Events,
		rosterLen: len(cls.Students),
	}
	e.scene = scene.New(cv)
	cv.OnDeleteKey(e.onDeleteKey)
	if opts.PollInterval > 0 {
		e.watcher = newWatcher(opts.PollInterval, e.pollRoster)
	}
	return e, nil
}

// Code returns the class code this session edits.
func (e *Editor) Code() string { return e.code }

// onDeleteKey removes every table in the active selection. Absent ids
// are ignored so a repeated key press is harmless.
func (e *Editor) onDeleteKey() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	for _, t := range e.canvas.ActiveSelection() {
		if err := e.scene.RemoveTable(t.ID); err != nil && !errors.Is(err, scene.ErrTableNotFound) {
			return
		}
	}
}

// AddTables appends n empty tables of seatsPerTable seats, numbered
// continuing from the session's monotonic counter.
func (e *Editor) AddTables(n, seatsPerTable int) ([]*scene.Table, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	return layout.AddTables(e.scene, n, seatsPerTable)
}

// RemoveTable deletes one table by id. Callers treat
// scene.ErrTableNotFound as an idempotent delete.
func (e *Editor) RemoveTable(id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return e.scene.RemoveTable(id)
}

// Transform applies a drag, resize or rotate result to one table. Nil
// pointers leave the corresponding property untouched. A resize
// recomputes the seat offsets for the new body size.
func (e *Editor) Transform(id uint64, x, y, width, height, rotation *float64) (*scene.Table, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	t, ok := e.scene.Get(id)
	if !ok {
		return nil, scene.ErrTableNotFound
	}
	if x != nil {
		t.Position.X = *x
	}
	if y != nil {
		t.Position.Y = *y
	}
	if rotation != nil {
		t.Rotation = *rotation
	}
	if width != nil || height != nil {
		w, h := t.Width, t.Height
		if width != nil {
			w = *width
		}
		if height != nil {
			h = *height
		}
		t.Resize(w, h)
	}
	return t, nil
}

// GenerateUniform replaces the scene with count tables of seatsPerTable
// seats each and no occupants.
func (e *Editor) GenerateUniform(count, seatsPerTable int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return layout.GenerateUniform(e.scene, count, seatsPerTable)
}

// GenerateFromRoster reads the current roster and replaces the scene
// with tableCount tables of seatsPerTable seats, names assigned to seats
// in roster order. Returns how many roster entries did not fit. The
// parameters are remembered so a roster poll can regenerate with them.
func (e *Editor) GenerateFromRoster(ctx context.Context, tableCount, seatsPerTable int) (unplaced int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0, ErrClosed
	}
	cls, err := e.repo.Get(ctx, e.code)
	if err != nil {
		return 0, err
	}
	unplaced, err = layout.GenerateFromRoster(e.scene, cls.Roster(), tableCount, seatsPerTable)
	if err != nil {
		return 0, err
	}
	e.rosterLen = len(cls.Students)
	e.genTables = tableCount
	e.genSeats = seatsPerTable
	e.rosterApplied = true
	return unplaced, nil
}

// Clear empties the scene; table numbering restarts at 1. It also
// forgets any remembered roster generation so a later roster change
// does not resurrect the cleared layout. The cleared state is not
// persisted until the next Save.
func (e *Editor) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.scene.Clear()
	e.rosterApplied = false
	return nil
}

// Select replaces the canvas selection.
func (e *Editor) Select(ids ...uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.canvas.SetSelection(ids...)
}

// MergeSelection merges the currently selected tables into one and
// selects the result. At least two tables must be selected.
func (e *Editor) MergeSelection() (*scene.Table, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	sel := e.canvas.ActiveSelection()
	ids := make([]uint64, 0, len(sel))
	for _, t := range sel {
		ids = append(ids, t.ID)
	}
	merged, err := layout.Merge(e.scene, ids)
	if err != nil {
		return nil, err
	}
	e.canvas.SetSelection(merged.ID)
	return merged, nil
}

// Merge merges the tables with the given ids, bypassing the canvas
// selection.
func (e *Editor) Merge(ids []uint64) (*scene.Table, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	return layout.Merge(e.scene, ids)
}

// Tables returns the current tables in creation order.
func (e *Editor) Tables() []*scene.Table {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Tables()
}

// Count returns the current table count.
func (e *Editor) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Count()
}

// Save serializes the canvas, wraps the snapshot with the save time and
// table count, and appends it to the class's layout sequence. The stored
// layout is immutable; saving again appends a new one.
func (e *Editor) Save(ctx context.Context) (model.Layout, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return model.Layout{}, ErrClosed
	}
	blob, err := e.canvas.Serialize()
	if err != nil {
		return model.Layout{}, err
	}
	lay := model.Layout{
		Data:      blob,
		CreatedAt: time.Now().UTC(),
		DeskCount: e.scene.Count(),
	}
	if _, err := e.repo.AppendLayout(ctx, e.code, lay); err != nil {
		return model.Layout{}, err
	}
	if e.events != nil {
		e.events.LayoutSaved(ctx, queue.LayoutSavedEvent{
			ClassCode: e.code,
			DeskCount: lay.DeskCount,
			SeatTotal: e.scene.TotalSeats(),
			CreatedAt: lay.CreatedAt.Format(time.RFC3339),
		})
	}
	return lay, nil
}

// pollRoster is the recurring roster check. An unchanged roster size is
// a no-op. A changed size regenerates the whole scene from the roster
// with the last generation parameters, discarding manual rearrangement
// done since — the engine favors reflecting the current roster over
// preserving edits.
func (e *Editor) pollRoster() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	cls, err := e.repo.Get(ctx, e.code)
	if err != nil {
		return
	}
	if len(cls.Students) == e.rosterLen {
		return
	}
	previous := e.rosterLen
	e.rosterLen = len(cls.Students)
	if !e.rosterApplied || len(cls.Students) == 0 {
		return
	}
	if _, err := layout.GenerateFromRoster(e.scene, cls.Roster(), e.genTables, e.genSeats); err != nil {
		return
	}
	if e.events != nil {
		e.events.RosterChanged(ctx, queue.RosterChangedEvent{
			ClassCode:    e.code,
			PreviousSize: previous,
			RosterSize:   len(cls.Students),
			ChangedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Close tears the session down and stops the roster poll. Close is
// idempotent; operations after Close fail with ErrClosed.
func (e *Editor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	w := e.watcher
	e.mu.Unlock()
	if w != nil {
		w.stop()
	}
}
