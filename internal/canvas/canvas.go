// Package canvas defines the rendering driver capability the engine
// works against, a headless implementation of it, and the versioned
// snapshot format layouts are persisted in. The engine issues add,
// remove and clear commands to the driver and consumes selection and
// delete-key events from it; any renderer satisfying Canvas is
// interchangeable.
package canvas

import (
	"sync"

	"github.com/iliyamo/classroom-layout/internal/scene"
)

// Canvas is the full driver capability set. It extends the narrow
// scene.Driver sync surface with selection state, event registration and
// scene serialization.
type Canvas interface {
	scene.Driver

	// ActiveSelection returns the currently selected tables in
	// selection order.
	ActiveSelection() []*scene.Table

	// SetSelection replaces the active selection, dropping ids that do
	// not resolve to a rendered table.
	SetSelection(ids ...uint64)

	// Serialize encodes the full render and geometry state of every
	// table into the snapshot format.
	Serialize() ([]byte, error)

	// OnSelectionChanged registers a handler invoked whenever the
	// selection changes.
	OnSelectionChanged(fn func(selected []*scene.Table))

	// OnDeleteKey registers a handler invoked when the user presses the
	// delete key with a selection active.
	OnDeleteKey(fn func())
}

// Headless is an in-process Canvas with no rendering surface. It keeps
// the retained shape set, tracks selection, and serializes to the
// versioned snapshot schema. The HTTP surface drives it in place of a
// real interactive canvas; tests use it directly.
//
// Headless guards its state with its own mutex because input events
// (selection, delete key) arrive from request goroutines while the
// engine mutates the rendered set from under its own lock. Event
// handlers are invoked with no canvas lock held, so a handler may call
// back into the canvas or the engine freely.
type Headless struct {
	mu        sync.RWMutex
	tables    map[uint64]*scene.Table
	order     []uint64
	selection []uint64

	selectionHandlers []func([]*scene.Table)
	deleteHandlers    []func()
}

// NewHeadless returns an empty headless canvas.
func NewHeadless() *Headless {
	return &Headless{tables: make(map[uint64]*scene.Table)}
}

// Add inserts a table into the rendered set.
func (c *Headless) Add(t *scene.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tables[t.ID]; ok {
		return
	}
	c.tables[t.ID] = t
	c.order = append(c.order, t.ID)
}

// Remove takes a table out of the rendered set and drops it from the
// selection if it was selected.
func (c *Headless) Remove(t *scene.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tables[t.ID]; !ok {
		return
	}
	delete(c.tables, t.ID)
	for i, id := range c.order {
		if id == t.ID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	for i, id := range c.selection {
		if id == t.ID {
			c.selection = append(c.selection[:i], c.selection[i+1:]...)
			break
		}
	}
}

// Clear removes every table and empties the selection without firing
// selection handlers.
func (c *Headless) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[uint64]*scene.Table)
	c.order = nil
	c.selection = nil
}

// activeSelectionLocked resolves the selected ids to tables. Callers
// hold at least a read lock.
func (c *Headless) activeSelectionLocked() []*scene.Table {
	out := make([]*scene.Table, 0, len(c.selection))
	for _, id := range c.selection {
		if t, ok := c.tables[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// ActiveSelection returns the selected tables in selection order.
// Ids that no longer resolve to a rendered table are skipped.
func (c *Headless) ActiveSelection() []*scene.Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeSelectionLocked()
}

// SetSelection replaces the active selection and fires the
// selection-changed handlers. Unknown ids are ignored.
func (c *Headless) SetSelection(ids ...uint64) {
	c.mu.Lock()
	c.selection = nil
	for _, id := range ids {
		if _, ok := c.tables[id]; ok {
			c.selection = append(c.selection, id)
		}
	}
	sel := c.activeSelectionLocked()
	handlers := make([]func([]*scene.Table), len(c.selectionHandlers))
	copy(handlers, c.selectionHandlers)
	c.mu.Unlock()

	for _, fn := range handlers {
		fn(sel)
	}
}

// PressDeleteKey simulates the delete key event the interactive canvas
// would emit. Handlers run only when something is selected.
func (c *Headless) PressDeleteKey() {
	c.mu.RLock()
	empty := len(c.selection) == 0
	handlers := make([]func(), len(c.deleteHandlers))
	copy(handlers, c.deleteHandlers)
	c.mu.RUnlock()
	if empty {
		return
	}
	for _, fn := range handlers {
		fn()
	}
}

// OnSelectionChanged registers a selection handler.
func (c *Headless) OnSelectionChanged(fn func([]*scene.Table)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectionHandlers = append(c.selectionHandlers, fn)
}

// OnDeleteKey registers a delete-key handler.
func (c *Headless) OnDeleteKey(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteHandlers = append(c.deleteHandlers, fn)
}

// Serialize encodes the rendered tables as a version 1 snapshot.
func (c *Headless) Serialize() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tables := make([]*scene.Table, 0, len(c.order))
	for _, id := range c.order {
		tables = append(tables, c.tables[id])
	}
	return EncodeSnapshot(tables)
}
