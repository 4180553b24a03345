package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-layout/internal/repository"
	"github.com/iliyamo/classroom-layout/internal/store"
)

func newEditorHandler(t *testing.T) *EditorHandler {
	t.Helper()
	repo := repository.NewClassRepo(store.NewMemory())
	if _, err := repo.Create(context.Background(), "ABC234", "Homeroom"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	h := NewEditorHandler(repo, nil, 0)
	t.Cleanup(h.CloseAll)
	return h
}

// call invokes an editor handler method with an optional JSON body and
// path parameters, returning the recorder.
func call(t *testing.T, fn echo.HandlerFunc, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPost, "/", reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := fn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func openSession(t *testing.T, h *EditorHandler) string {
	t.Helper()
	rec := call(t, h.Open, "", map[string]string{"code": "ABC234"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Open status = %d, want 201", rec.Code)
	}
	var state editorState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode open response: %v", err)
	}
	if state.Session == "" {
		t.Fatal("open response carries no session id")
	}
	return state.Session
}

func TestClearRouteEmptiesScene(t *testing.T) {
	h := newEditorHandler(t)
	sid := openSession(t, h)

	rec := call(t, h.AddTables, `{"count":3,"seats_per_table":4}`, map[string]string{"sid": sid})
	if rec.Code != http.StatusOK {
		t.Fatalf("AddTables status = %d, want 200", rec.Code)
	}
	var state editorState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode add response: %v", err)
	}
	if state.Count != 3 {
		t.Fatalf("count after add = %d, want 3", state.Count)
	}

	rec = call(t, h.Clear, "", map[string]string{"sid": sid})
	if rec.Code != http.StatusOK {
		t.Fatalf("Clear status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode clear response: %v", err)
	}
	if state.Count != 0 || len(state.Tables) != 0 {
		t.Errorf("state after clear = %d tables, want 0", state.Count)
	}

	// Numbering restarts for tables added after the clear.
	rec = call(t, h.AddTables, `{"count":1,"seats_per_table":4}`, map[string]string{"sid": sid})
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode add response: %v", err)
	}
	if len(state.Tables) != 1 || state.Tables[0].Number != 1 {
		t.Errorf("first table after clear numbered %d, want 1", state.Tables[0].Number)
	}
}

func TestClearRouteUnknownSession(t *testing.T) {
	h := newEditorHandler(t)
	rec := call(t, h.Clear, "", map[string]string{"sid": "nope"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
