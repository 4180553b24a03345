package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-layout/internal/model"
	"github.com/iliyamo/classroom-layout/internal/repository"
	"github.com/iliyamo/classroom-layout/internal/utils"
)

// ClassHandler exposes class management for authenticated teachers:
// creating classes, inspecting rosters and pruning student submissions.
type ClassHandler struct {
	Classes *repository.ClassRepo
}

func NewClassHandler(classes *repository.ClassRepo) *ClassHandler {
	if classes == nil {
		panic("nil repository passed to NewClassHandler")
	}
	return &ClassHandler{Classes: classes}
}

// codeRetries bounds how many fresh codes creation tries before giving
// up on collisions.
const codeRetries = 5

type createClassReq struct {
	Name string `json:"name"`
}

// classSummary is the list representation: counts instead of full
// rosters and layout blobs.
type classSummary struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	StudentCount int    `json:"student_count"`
	LayoutCount  int    `json:"layout_count"`
}

// layoutSummary lists a saved layout without its scene blob.
type layoutSummary struct {
	Index     int       `json:"index"`
	CreatedAt time.Time `json:"createdAt"`
	DeskCount int       `json:"deskCount"`
}

func summarize(c *model.Class) classSummary {
	return classSummary{
		Code:         c.Code,
		Name:         c.Name,
		StudentCount: len(c.Students),
		LayoutCount:  len(c.Layouts),
	}
}

// CreateClass handles POST /v1/classes. A six character join code is
// generated server-side; the teacher only supplies a display name.
func (h *ClassHandler) CreateClass(c echo.Context) error {
	var req createClassReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var created *model.Class
	for i := 0; i < codeRetries; i++ {
		code, err := utils.NewClassCode()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "code generation failed"})
		}
		created, err = h.Classes.Create(ctx, code, req.Name)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrClassExists) {
			continue // rare collision, try another code
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create class failed"})
	}
	if created == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not allocate class code"})
	}
	return c.JSON(http.StatusCreated, created)
}

// ListClasses handles GET /v1/classes and returns summaries for the
// dashboard.
func (h *ClassHandler) ListClasses(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	classes, err := h.Classes.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list classes failed"})
	}
	out := make([]classSummary, 0, len(classes))
	for _, cls := range classes {
		out = append(out, summarize(cls))
	}
	return c.JSON(http.StatusOK, out)
}

// GetClass handles GET /v1/classes/:code and returns the full roster
// with layout summaries.
func (h *ClassHandler) GetClass(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cls, err := h.Classes.Get(ctx, c.Param("code"))
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load class failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":     cls.Code,
		"name":     cls.Name,
		"students": cls.Students,
		"layouts":  layoutSummaries(cls),
	})
}

// ListLayouts handles GET /v1/classes/:code/layouts.
func (h *ClassHandler) ListLayouts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cls, err := h.Classes.Get(ctx, c.Param("code"))
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load class failed"})
	}
	return c.JSON(http.StatusOK, layoutSummaries(cls))
}

func layoutSummaries(cls *model.Class) []layoutSummary {
	out := make([]layoutSummary, 0, len(cls.Layouts))
	for i, l := range cls.Layouts {
		out = append(out, layoutSummary{Index: i, CreatedAt: l.CreatedAt, DeskCount: l.DeskCount})
	}
	return out
}

// RemoveStudent handles DELETE /v1/classes/:code/students/:name.
func (h *ClassHandler) RemoveStudent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cls, err := h.Classes.RemoveStudent(ctx, c.Param("code"), c.Param("name"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrClassNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		case errors.Is(err, repository.ErrStudentNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove student failed"})
		}
	}
	return c.JSON(http.StatusOK, summarize(cls))
}

// RemovePreference handles
// DELETE /v1/classes/:code/students/:name/preferences/:index.
func (h *ClassHandler) RemovePreference(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid preference index"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err = h.Classes.RemovePreference(ctx, c.Param("code"), c.Param("name"), idx)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrClassNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		case errors.Is(err, repository.ErrStudentNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		case errors.Is(err, repository.ErrPreferenceNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "preference not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove preference failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
