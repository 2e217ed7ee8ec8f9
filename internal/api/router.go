package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/blog-platform/internal/api/handler"
	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// Dependencies bundles everything the router needs. Services and the
// dispatcher are constructed in main so their lifecycles outlive the router.
type Dependencies struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	Posts      ports.PostService
	Comments   ports.CommentService
	Stats      ports.StatsService
	Users      ports.UserService
	Dispatcher handler.EventDispatcher
	Verifier   *middleware.WebhookVerifier
	Signer     handler.UploadSigner
	JWTSecret  string
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	session := middleware.Session(deps.JWTSecret)

	// --- Handlers ---
	postHandler := handler.NewPostHandler(deps.Posts)
	commentHandler := handler.NewCommentHandler(deps.Comments)
	statsHandler := handler.NewStatsHandler(deps.Stats)
	userHandler := handler.NewUserHandler(deps.Users)
	webhookHandler := handler.NewWebhookHandler(deps.Verifier, deps.Dispatcher, deps.Logger)
	uploadHandler := handler.NewUploadHandler(deps.Signer)

	// --- Posts ---
	e.GET("/posts", postHandler.List)
	e.GET("/posts/upload-auth", uploadHandler.Auth, session)
	e.GET("/posts/:slug", postHandler.Get)
	e.POST("/posts", postHandler.Create, session)
	e.PATCH("/posts/:id", postHandler.Update, session)
	e.PATCH("/posts/:id/feature", postHandler.Feature, session)
	e.DELETE("/posts/:id", postHandler.Delete, session)

	// --- Comments ---
	e.GET("/comments/:postId", commentHandler.ListByPost)
	e.POST("/comments/:postId", commentHandler.Add, session)
	e.DELETE("/comments/:id", commentHandler.Delete, session)

	// --- Stats ---
	e.GET("/stats", statsHandler.Get)

	// --- Saved posts ---
	e.GET("/users/saved", userHandler.SavedPosts, session)
	e.POST("/users/saved", userHandler.ToggleSaved, session)

	// --- Identity webhooks (signature-verified, no session) ---
	e.POST("/webhooks/clerk", webhookHandler.Clerk)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
