package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"travelapi/internal/http/middleware"
	"travelapi/internal/service"
)

// Services bundles the application services the routes delegate to.
type Services struct {
	Auth          service.AuthService
	Profiles      service.ProfileService
	Documents     service.DocumentService
	Notifications service.NotificationService
	Reviews       service.ReviewService
	Notes         service.NoteService
	Visa          service.VisaService
	Uploads       service.UploadService
}

// Options tunes optional route behaviour.
type Options struct {
	// Gatherer backs /metrics. Nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// AuthLimiter guards sign-up and sign-in. Nil disables limiting.
	AuthLimiter *middleware.IPRateLimiter
	// Readiness lists extra dependencies /health pings after the database.
	Readiness []Pinger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services, opts Options) {
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app.Get("/health", HealthCheck(db, opts.Readiness...))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", Metrics(gatherer))

	requireAuth := middleware.RequireAuth(svcs.Auth)

	limited := func(h fiber.Handler) []fiber.Handler {
		if opts.AuthLimiter == nil {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{opts.AuthLimiter.Handler(), h}
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", limited(SignUp(svcs.Auth))...)
	authGroup.Post("/signin", limited(SignIn(svcs.Auth))...)
	authGroup.Post("/signout", requireAuth, SignOut(svcs.Auth))
	authGroup.Get("/me", requireAuth, CurrentUser(svcs.Auth))

	profile := app.Group("/profile", requireAuth)
	profile.Get("/", GetProfile(svcs.Profiles))
	profile.Patch("/", UpdateProfile(svcs.Profiles))
	profile.Post("/avatar", UploadAvatar(svcs.Profiles))

	docs := app.Group("/documents", requireAuth)
	docs.Get("/", ListDocuments(svcs.Documents))
	docs.Post("/", CreateDocument(svcs.Documents))
	docs.Get("/:id", GetDocument(svcs.Documents))
	docs.Patch("/:id", UpdateDocument(svcs.Documents))
	docs.Delete("/:id", DeleteDocument(svcs.Documents))
	docs.Put("/:id/file", ReplaceDocumentFile(svcs.Documents))
	docs.Get("/:id/file", DownloadDocument(svcs.Documents))
	docs.Get("/:id/url", DocumentURL(svcs.Documents))

	app.Get("/notifications", requireAuth, ListNotifications(svcs.Notifications))

	app.Get("/reviews", ListReviews(svcs.Reviews))
	app.Post("/reviews", requireAuth, CreateReview(svcs.Reviews))

	notes := app.Group("/notes", requireAuth)
	notes.Get("/", ListNotes(svcs.Notes))
	notes.Post("/", CreateNote(svcs.Notes))
	notes.Delete("/:id", DeleteNote(svcs.Notes))

	app.Get("/visa", LookupVisa(svcs.Visa))

	app.Post("/upload", requireAuth, Upload(svcs.Uploads))
}
