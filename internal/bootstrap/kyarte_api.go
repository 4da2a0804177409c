package bootstrap

import (
	"strings"

	"kyarte_server/adapter/in/http"
	"kyarte_server/config"
	"kyarte_server/infra/middleware"
	"kyarte_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewAPI builds the HTTP application with every route registered. The
// returned cleanup function releases the dependency graph.
func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	if cfg.SeedDemoData {
		if err := SeedDemoData(deps); err != nil {
			logger.Warn("Demo data seeding failed: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		ReadBufferSize:        16384,
		WriteBufferSize:       16384,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             10 * 1024 * 1024,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// CORS: credentials require explicit origins, never "*"
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	allowCredentials := true
	if allowOrigins == "" || allowOrigins == "*" {
		if cfg.IsProduction() {
			allowOrigins = ""
			allowCredentials = false
		} else {
			allowOrigins = "http://localhost:3000,http://localhost:5173"
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: allowCredentials,
		MaxAge:           86400,
	}))

	// Health check (no auth required)
	healthHandler := http.NewHealthHandler(deps.DB, deps.Redis)
	healthHandler.Register(app)

	// API routes (token auth only when a secret is configured)
	api := app.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))

	http.NewFolderHandler(deps.FolderService, deps.EmployeeService).RegisterRoutes(api)
	http.NewEmployeeHandler(deps.EmployeeService).RegisterRoutes(api)
	http.NewNoteHandler(deps.NoteService, deps.AuditStore).RegisterRoutes(api)
	http.NewCalendarHandler(deps.CalendarService, deps.CalendarSync).RegisterRoutes(api)

	return app, cleanup, nil
}
