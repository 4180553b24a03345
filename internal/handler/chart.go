package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-layout/internal/canvas"
	"github.com/iliyamo/classroom-layout/internal/repository"
)

// ChartHandler serves the public seating chart view: the most recently
// saved layout of a class, decoded from its snapshot so guests see
// tables and occupant names without any editor access.
type ChartHandler struct {
	Classes *repository.ClassRepo
}

func NewChartHandler(classes *repository.ClassRepo) *ChartHandler {
	if classes == nil {
		panic("nil repository passed to NewChartHandler")
	}
	return &ChartHandler{Classes: classes}
}

// Latest handles GET /v1/chart/:code.
func (h *ChartHandler) Latest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cls, err := h.Classes.Get(ctx, c.Param("code"))
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load class failed"})
	}
	if len(cls.Layouts) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no layout saved yet"})
	}
	latest := cls.Layouts[len(cls.Layouts)-1]
	tables, err := canvas.DecodeSnapshot(latest.Data)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "decode layout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"class":     cls.Name,
		"createdAt": latest.CreatedAt,
		"deskCount": latest.DeskCount,
		"tables":    tables,
	})
}
