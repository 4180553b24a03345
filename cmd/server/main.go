package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/classroom-layout/internal/config"
	"github.com/iliyamo/classroom-layout/internal/database"
	"github.com/iliyamo/classroom-layout/internal/handler"
	"github.com/iliyamo/classroom-layout/internal/queue"
	"github.com/iliyamo/classroom-layout/internal/repository"
	"github.com/iliyamo/classroom-layout/internal/router"
	queue_publisher "github.com/iliyamo/classroom-layout/internal/service"
	"github.com/iliyamo/classroom-layout/internal/store"
)

func main() {
	// Load .env when present; real deployments set the environment
	// directly, so a missing file is not an error.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	// MySQL holds teacher accounts and refresh tokens.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis holds classes, rosters and saved layouts. When it is not
	// reachable the server still comes up on an in-memory store so the
	// editor keeps working in development.
	var classStore store.Store
	if rc := config.NewRedisClient(); rc != nil {
		classStore = store.NewRedis(rc)
		defer rc.Close()
	} else {
		log.Println("redis unavailable, using in-memory class store")
		classStore = store.NewMemory()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	classes := repository.NewClassRepo(classStore)

	pollInterval := time.Duration(cfg.RosterPollMS) * time.Millisecond

	authH := handler.NewAuthHandler(cfg, users, tokens)
	classH := handler.NewClassHandler(classes)
	editorH := handler.NewEditorHandler(classes, queue_publisher.Notifier{}, pollInterval)
	studentH := handler.NewStudentHandler(classes)
	chartH := handler.NewChartHandler(classes)
	defer editorH.CloseAll()

	// Consume layout.saved and roster.changed in the background; the
	// consumer reconnects on its own if the broker drops.
	go func() {
		if err := queue.StartLayoutConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterTeacher(e, classH, editorH, cfg.JWTSecret)
	router.RegisterPublic(e, studentH, chartH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	// Plain return instead of log.Fatal so the deferred session and
	// connection teardown still runs.
	if err := e.Start(addr); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
