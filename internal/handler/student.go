package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-layout/internal/model"
	"github.com/iliyamo/classroom-layout/internal/repository"
)

// StudentHandler exposes the public join flow: a student enters a class
// code, their name, and optional seating preferences.
type StudentHandler struct {
	Classes *repository.ClassRepo
}

func NewStudentHandler(classes *repository.ClassRepo) *StudentHandler {
	if classes == nil {
		panic("nil repository passed to NewStudentHandler")
	}
	return &StudentHandler{Classes: classes}
}

type joinReq struct {
	Name        string   `json:"name"`
	Preferences []string `json:"preferences"`
	Comments    string   `json:"comments"`
}

// Join handles POST /v1/classes/:code/join. Submitting again under the
// same name replaces the earlier preferences instead of adding a second
// roster entry.
func (h *StudentHandler) Join(c echo.Context) error {
	var req joinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	prefs := make([]string, 0, len(req.Preferences))
	for _, p := range req.Preferences {
		if p = strings.TrimSpace(p); p != "" {
			prefs = append(prefs, p)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cls, err := h.Classes.UpsertStudent(ctx, c.Param("code"), model.Student{
		Name:        name,
		Preferences: prefs,
		Comments:    strings.TrimSpace(req.Comments),
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "join failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"class":         cls.Name,
		"student_count": len(cls.Students),
	})
}
