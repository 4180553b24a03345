package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-layout/internal/canvas"
	"github.com/iliyamo/classroom-layout/internal/engine"
	"github.com/iliyamo/classroom-layout/internal/layout"
	"github.com/iliyamo/classroom-layout/internal/repository"
	"github.com/iliyamo/classroom-layout/internal/scene"
)

// EditorHandler manages layout editor sessions. Each open session binds
// an engine editor to a headless canvas; the HTTP surface stands in for
// the interactive canvas, forwarding selection and delete-key input.
type EditorHandler struct {
	Classes      *repository.ClassRepo
	Events       engine.Events
	PollInterval time.Duration

	mu       sync.RWMutex
	sessions map[string]*editorSession
}

type editorSession struct {
	editor *engine.Editor
	canvas *canvas.Headless
}

func NewEditorHandler(classes *repository.ClassRepo, events engine.Events, pollInterval time.Duration) *EditorHandler {
	if classes == nil {
		panic("nil repository passed to NewEditorHandler")
	}
	return &EditorHandler{
		Classes:      classes,
		Events:       events,
		PollInterval: pollInterval,
		sessions:     make(map[string]*editorSession),
	}
}

func (h *EditorHandler) session(id string) (*editorSession, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// ----- DTOs -----

type addTablesReq struct {
	Count         int `json:"count"`
	SeatsPerTable int `json:"seats_per_table"`
}

type generateReq struct {
	// Mode is "uniform" (empty tables) or "roster" (names assigned to
	// seats in roster order).
	Mode          string `json:"mode"`
	TableCount    int    `json:"table_count"`
	SeatsPerTable int    `json:"seats_per_table"`
	// DeskPerStudent, with uniform mode, sets the table count to the
	// current roster size (one desk per student).
	DeskPerStudent bool `json:"desk_per_student"`
}

type selectionReq struct {
	IDs []uint64 `json:"ids"`
}

type mergeReq struct {
	// IDs to merge; when empty the active canvas selection is used.
	IDs []uint64 `json:"ids"`
}

type transformReq struct {
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Width    *float64 `json:"width"`
	Height   *float64 `json:"height"`
	Rotation *float64 `json:"rotation"`
}

// state is the editor view returned after every mutation so clients can
// re-render without a second round trip.
type editorState struct {
	Session   string         `json:"session"`
	ClassCode string         `json:"class_code"`
	Tables    []*scene.Table `json:"tables"`
	Count     int            `json:"count"`
}

func (h *EditorHandler) state(id string, s *editorSession) editorState {
	tables := s.editor.Tables()
	return editorState{
		Session:   id,
		ClassCode: s.editor.Code(),
		Tables:    tables,
		Count:     len(tables),
	}
}

// Open handles POST /v1/classes/:code/editor: creates a session bound
// to the class and starts the roster poll.
func (h *EditorHandler) Open(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cv := canvas.NewHeadless()
	ed, err := engine.Open(ctx, c.Param("code"), h.Classes, cv, engine.Options{
		PollInterval: h.PollInterval,
		Events:       h.Events,
	})
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open editor failed"})
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.sessions[id] = &editorSession{editor: ed, canvas: cv}
	h.mu.Unlock()

	s, _ := h.session(id)
	return c.JSON(http.StatusCreated, h.state(id, s))
}

// State handles GET /v1/editor/:sid.
func (h *EditorHandler) State(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	return c.JSON(http.StatusOK, h.state(id, s))
}

// AddTables handles POST /v1/editor/:sid/tables: adds count tables of
// seats_per_table seats, numbered after the existing ones.
func (h *EditorHandler) AddTables(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	var req addTablesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Count == 0 {
		req.Count = 1
	}
	if req.SeatsPerTable == 0 {
		req.SeatsPerTable = 4
	}
	if _, err := s.editor.AddTables(req.Count, req.SeatsPerTable); err != nil {
		return editorError(c, err)
	}
	return c.JSON(http.StatusOK, h.state(id, s))
}

// RemoveTable handles DELETE /v1/editor/:sid/tables/:id. A missing id
// is reported but treated as an idempotent delete.
func (h *EditorHandler) RemoveTable(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	removed := true
	if err := s.editor.RemoveTable(tableID); err != nil {
		if !errors.Is(err, scene.ErrTableNotFound) {
			return editorError(c, err)
		}
		removed = false
	}
	return c.JSON(http.StatusOK, echo.Map{
		"removed": removed,
		"count":   s.editor.Count(),
	})
}

// Transform handles POST /v1/editor/:sid/tables/:id/transform: the end
// of a drag, resize or rotate gesture.
func (h *EditorHandler) Transform(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var req transformReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, err := s.editor.Transform(tableID, req.X, req.Y, req.Width, req.Height, req.Rotation)
	if err != nil {
		return editorError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Generate handles POST /v1/editor/:sid/generate. Generation replaces
// the whole scene; it is not additive.
func (h *EditorHandler) Generate(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SeatsPerTable == 0 {
		req.SeatsPerTable = 4
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch req.Mode {
	case "roster":
		unplaced, err := s.editor.GenerateFromRoster(ctx, req.TableCount, req.SeatsPerTable)
		if err != nil {
			return editorError(c, err)
		}
		resp := h.state(id, s)
		return c.JSON(http.StatusOK, echo.Map{
			"state":    resp,
			"unplaced": unplaced,
		})
	case "uniform", "":
		count := req.TableCount
		if req.DeskPerStudent {
			cls, err := h.Classes.Get(ctx, s.editor.Code())
			if err != nil {
				return editorError(c, err)
			}
			count = len(cls.Students)
		}
		if err := s.editor.GenerateUniform(count, req.SeatsPerTable); err != nil {
			return editorError(c, err)
		}
		return c.JSON(http.StatusOK, h.state(id, s))
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mode must be uniform or roster"})
	}
}

// Selection handles POST /v1/editor/:sid/selection, mirroring the
// selection the user made on their canvas.
func (h *EditorHandler) Selection(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	var req selectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s.editor.Select(req.IDs...)
	return c.JSON(http.StatusOK, echo.Map{"selected": len(s.canvas.ActiveSelection())})
}

// Merge handles POST /v1/editor/:sid/merge: combines the selected (or
// explicitly listed) tables into one larger table.
func (h *EditorHandler) Merge(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	var req mergeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var (
		merged *scene.Table
		err    error
	)
	if len(req.IDs) > 0 {
		merged, err = s.editor.Merge(req.IDs)
	} else {
		merged, err = s.editor.MergeSelection()
	}
	if err != nil {
		return editorError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"merged": merged,
		"count":  s.editor.Count(),
	})
}

// Clear handles POST /v1/editor/:sid/clear: empties the scene so the
// next added table is numbered 1 again. Saved layouts are untouched.
func (h *EditorHandler) Clear(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	if err := s.editor.Clear(); err != nil {
		return editorError(c, err)
	}
	return c.JSON(http.StatusOK, h.state(id, s))
}

// DeleteKey handles POST /v1/editor/:sid/delete-key, forwarding the
// delete key press the client canvas reported.
func (h *EditorHandler) DeleteKey(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	s.canvas.PressDeleteKey()
	return c.JSON(http.StatusOK, h.state(id, s))
}

// Save handles POST /v1/editor/:sid/save: appends the current scene as
// a new immutable layout on the class.
func (h *EditorHandler) Save(c echo.Context) error {
	id := c.Param("sid")
	s, ok := h.session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lay, err := s.editor.Save(ctx)
	if err != nil {
		return editorError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"createdAt": lay.CreatedAt,
		"deskCount": lay.DeskCount,
	})
}

// Close handles DELETE /v1/editor/:sid: tears the session down and
// stops its roster poll.
func (h *EditorHandler) Close(c echo.Context) error {
	id := c.Param("sid")
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	s.editor.Close()
	return c.NoContent(http.StatusNoContent)
}

// CloseAll tears down every open session; used at server shutdown.
func (h *EditorHandler) CloseAll() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*editorSession)
	h.mu.Unlock()
	for _, s := range sessions {
		s.editor.Close()
	}
}

// editorError maps engine and layout sentinels onto HTTP responses.
func editorError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, scene.ErrInvalidCapacity),
		errors.Is(err, layout.ErrInvalidTableCount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, layout.ErrEmptyRoster):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no students have joined this class yet"})
	case errors.Is(err, layout.ErrSelectionTooSmall):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "select at least 2 tables to merge"})
	case errors.Is(err, scene.ErrTableNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
	case errors.Is(err, repository.ErrClassNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
	case errors.Is(err, engine.ErrClosed):
		return c.JSON(http.StatusGone, echo.Map{"error": "editor session closed"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "editor operation failed"})
	}
}
