package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-layout/internal/handler"
	"github.com/iliyamo/classroom-layout/internal/middleware"
	"github.com/iliyamo/classroom-layout/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers or monitoring systems to verify that the
	// service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication: the handler accepts a
	// JSON body containing a refresh_token or a bearer header and
	// invalidates the matching sessions.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)

	// Also reachable outside /v1/auth so clients holding only a refresh
	// token can terminate a session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterTeacher registers class management and editor routes. All of
// them require a valid access token with the TEACHER role.
func RegisterTeacher(e *echo.Echo, cl *handler.ClassHandler, ed *handler.EditorHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(repository.RoleTeacher))

	// Class management.
	g.POST("/classes", cl.CreateClass)
	g.GET("/classes", cl.ListClasses)
	g.GET("/classes/:code", cl.GetClass)
	g.GET("/classes/:code/layouts", cl.ListLayouts)
	g.DELETE("/classes/:code/students/:name", cl.RemoveStudent)
	g.DELETE("/classes/:code/students/:name/preferences/:index", cl.RemovePreference)

	// Editor sessions. Opening binds a session to a class; every other
	// editor route addresses the session id returned by Open.
	g.POST("/classes/:code/editor", ed.Open)
	g.GET("/editor/:sid", ed.State)
	g.POST("/editor/:sid/tables", ed.AddTables)
	g.DELETE("/editor/:sid/tables/:id", ed.RemoveTable)
	g.POST("/editor/:sid/tables/:id/transform", ed.Transform)
	g.POST("/editor/:sid/generate", ed.Generate)
	g.POST("/editor/:sid/selection", ed.Selection)
	g.POST("/editor/:sid/merge", ed.Merge)
	g.POST("/editor/:sid/clear", ed.Clear)
	g.POST("/editor/:sid/delete-key", ed.DeleteKey)
	g.POST("/editor/:sid/save", ed.Save)
	g.DELETE("/editor/:sid", ed.Close)
}

// RegisterPublic registers the unauthenticated student-facing routes:
// joining a class by code and viewing the latest seating chart. These
// routes apply no JWT or role middleware and are intended for students
// and guests.
func RegisterPublic(e *echo.Echo, st *handler.StudentHandler, ch *handler.ChartHandler) {
	// Students submit their name and preferences with a class code.
	e.POST("/v1/classes/:code/join", st.Join)
	// Anyone with the code can view the latest saved seating chart.
	e.GET("/v1/chart/:code", ch.Latest)
}
