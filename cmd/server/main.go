// cmd/server/main.go
// This is the entry point for the Survivor Pool API server.
// In Go, the "main" package and its "main()" function is where the program starts
// executing. The "cmd/server" directory follows a common Go convention: the cmd/
// folder holds executable binaries, and internal/ holds packages that are not
// meant to be imported by other projects.
package main

import (
	"log"

	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors handles Cross-Origin Resource Sharing — allows the pool's web frontend
	// to talk to the API even when they're served from different origins
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"

	// Internal packages — our own code, imported by module path
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/config"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/contest"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/database"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/handlers"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/middleware"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/store"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/websocket"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	cfg := config.Load()

	// Connect to the PostgreSQL database.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run any pending SQL migration files (in the migrations/ directory).
	// Running them on startup ensures the schema is always in sync when the
	// server starts.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create the live-update Hub and start it in a goroutine. The Hub fans
	// contest events (processed days, lock changes) out to every client
	// holding the /api/v1/updates stream open.
	hub := websocket.NewHub()
	go hub.Run()

	// The contest service serializes every read-modify-write cycle over the
	// stored records, so a pick submission can never race day processing.
	svc := contest.NewService(store.New(db))
	svc.SetBroadcaster(hub)

	// Create a new Fiber app (our HTTP server).
	app := fiber.New(fiber.Config{
		AppName: "Survivor Pool API",
	})

	// --- Global middleware ---
	// logger.New() logs each HTTP request: method, path, status code, and duration.
	app.Use(logger.New())
	// cors.New() allows requests from any origin (needed for the frontend in
	// development). In production, lock this down to your specific domain.
	app.Use(cors.New())

	// --- Public routes (no auth required) ---
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api/v1")

	// POST /api/v1/login — exchange the admin credential for a session token
	api.Post("/login", handlers.Login(cfg))

	// Contest state, standings, and the live update stream are public:
	// every player checks the pool page, only the admin mutates it.
	api.Get("/contest", handlers.GetContest(svc))
	api.Get("/players", handlers.GetPlayers(svc))
	api.Get("/players/:id", handlers.GetPlayer(svc))
	api.Get("/updates", handlers.StreamUpdates(hub))

	// POST /api/v1/players/:id/picks — pick submission. Gated by the site
	// lock so the admin can close submissions once games tip off.
	api.Post("/players/:id/picks", middleware.RequireUnlocked(svc), handlers.SubmitPick(svc))

	// --- Admin routes ---
	// Everything under /api/v1/admin requires a valid admin session token.
	//
	// Route group pattern: app.Group(prefix, middlewares...) applies the
	// middleware to every route registered on the returned group — we don't
	// have to repeat it per route.
	admin := api.Group("/admin", middleware.Auth(cfg), middleware.RequireRole("admin"))

	admin.Post("/players", handlers.CreatePlayer(svc))
	admin.Put("/players/:id", handlers.UpdatePlayer(svc))
	admin.Delete("/players/:id", handlers.DeletePlayer(svc))

	admin.Put("/games/:day", handlers.ReplaceGames(svc))
	admin.Patch("/games/:day/:slot", handlers.UpdateGame(svc))

	admin.Post("/days/:day/process", handlers.ProcessDay(svc))

	admin.Put("/lock", handlers.SetLock(svc))
	admin.Put("/config", handlers.UpdateConfig(svc))
	admin.Get("/submissions", handlers.GetSubmissions(svc))

	// Start listening for HTTP connections on the configured port.
	// ":" + cfg.Port produces a string like ":8080" — listen on all interfaces.
	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
