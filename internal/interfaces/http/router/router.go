package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/infrastructure/auth"
	"github.com/lifecurriculum/backend/internal/infrastructure/logger"
	"github.com/lifecurriculum/backend/internal/interfaces/http/handler"
	"github.com/lifecurriculum/backend/internal/interfaces/http/middleware"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Family     *handler.FamilyHandler
	Child      *handler.ChildHandler
	Curriculum *handler.CurriculumHandler
	Progress   *handler.ProgressHandler
	Chat       *handler.ChatHandler
	Resource   *handler.ResourceHandler
	Athletic   *handler.AthleticHandler
	Insight    *handler.InsightHandler
}

// Config carries the router's cross-cutting dependencies. RateLimit
// applies to authenticated traffic, AuthRateLimit to the public
// authentication endpoints. A zero limit disables that limiter.
type Config struct {
	JWTService     *auth.JWTService
	Logger         *zap.Logger
	RateLimit      int
	RateWindow     time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// Setup mounts all routes on the engine. Health endpoints live at the
// root; everything else sits under /api/v1 with auth endpoints public
// and the rest behind bearer authentication.
func Setup(engine *gin.Engine, h Handlers, cfg Config) {
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORS(),
		middleware.Secure(),
		middleware.BodyLimit(maxBodyBytes),
	)

	engine.GET("/health", h.Health.Health)
	engine.GET("/ready", h.Health.Ready)

	api := engine.Group("/api/v1")

	public := api.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		public.Use(middleware.AuthRateLimit(middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)))
	}
	{
		public.POST("/register", h.Auth.Register)
		public.POST("/login", h.Auth.Login)
		public.POST("/refresh", h.Auth.Refresh)
		public.POST("/logout", h.Auth.Logout)
		public.POST("/verify-email", h.Auth.VerifyEmail)
		public.POST("/forgot-password", h.Auth.ForgotPassword)
		public.POST("/reset-password", h.Auth.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(cfg.JWTService))

	// The limiter runs after auth so it keys on the user rather than a
	// possibly shared client IP
	if cfg.RateLimit > 0 {
		protected.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)))
	}

	account := protected.Group("/auth")
	{
		account.GET("/me", h.Auth.Me)
		account.POST("/resend-verification", h.Auth.ResendVerification)
		account.POST("/change-password", h.Auth.ChangePassword)
		account.POST("/caregivers", middleware.RequireRole("parent"), h.Auth.AddCaregiver)
	}

	family := protected.Group("/family")
	{
		family.GET("", h.Family.Get)
		family.PUT("/name", h.Family.Rename)
		family.PUT("/tier", middleware.RequireRole("parent"), h.Family.ChangeTier)
		family.GET("/members", h.Family.ListMembers)
	}

	children := protected.Group("/children")
	{
		children.POST("", h.Child.Create)
		children.GET("", h.Child.List)
		children.GET("/:childId", h.Child.Get)
		children.PUT("/:childId", h.Child.Update)
		children.DELETE("/:childId", middleware.RequireRole("parent"), h.Child.Delete)
		children.POST("/:childId/avatar-upload", h.Child.RequestAvatarUpload)

		children.GET("/:childId/stage", h.Curriculum.StageForChild)

		progress := children.Group("/:childId/progress")
		{
			progress.GET("", h.Progress.ListByChild)
			progress.GET("/summary", h.Progress.Summary)
			progress.POST("/milestones", h.Progress.RecordMilestone)
			progress.POST("/activities", h.Progress.RecordActivity)
			progress.POST("/:recordId/photo-upload", h.Progress.RequestPhotoUpload)
			progress.DELETE("/:recordId", h.Progress.Delete)
		}

		children.GET("/:childId/athletes", h.Athletic.ListAthletesByChild)

		insights := children.Group("/:childId/insights")
		{
			insights.POST("/interests", h.Insight.AnalyzeInterests)
			insights.GET("/interests", h.Insight.GetInterestProfile)
			insights.POST("/roadmap", h.Insight.GenerateRoadmap)
			insights.GET("/roadmap", h.Insight.GetRoadmap)
		}
	}

	curriculum := protected.Group("/curriculum")
	{
		curriculum.GET("/stages", h.Curriculum.ListStages)
		curriculum.GET("/stages/:stageId/activities", h.Curriculum.ListActivitiesByStage)
		curriculum.GET("/domains", h.Curriculum.ListDomains)
		curriculum.GET("/milestones", h.Curriculum.ListMilestones)
		curriculum.GET("/milestones/:id", h.Curriculum.GetMilestone)
		curriculum.GET("/activities/:id", h.Curriculum.GetActivity)
	}

	chat := protected.Group("/chat")
	{
		chat.POST("/sessions", h.Chat.CreateSession)
		chat.GET("/sessions", h.Chat.ListSessions)
		chat.GET("/sessions/:sessionId", h.Chat.GetSession)
		chat.DELETE("/sessions/:sessionId", h.Chat.DeleteSession)
		chat.POST("/sessions/:sessionId/messages", h.Chat.SendMessage)
		chat.POST("/sessions/:sessionId/messages/stream", h.Chat.StreamMessage)
		chat.GET("/quota", h.Chat.QuotaStatus)
	}

	resources := protected.Group("/resources")
	{
		resources.GET("", h.Resource.List)
		resources.GET("/bookmarks", h.Resource.ListBookmarks)
		resources.GET("/:id", h.Resource.Get)
		resources.POST("/:id/bookmark", h.Resource.Bookmark)
		resources.DELETE("/:id/bookmark", h.Resource.Unbookmark)
	}

	athletics := protected.Group("/athletics")
	{
		athletics.GET("/sports", h.Athletic.ListSports)
		athletics.POST("/athletes", h.Athletic.CreateAthlete)
		athletics.PUT("/athletes/:athleteId", h.Athletic.UpdateAthlete)
		athletics.DELETE("/athletes/:athleteId", h.Athletic.DeleteAthlete)
		athletics.POST("/athletes/:athleteId/activities", h.Athletic.LogActivity)
		athletics.GET("/athletes/:athleteId/activities", h.Athletic.ListActivity)
		athletics.POST("/athletes/:athleteId/check-ins", h.Athletic.CheckIn)
		athletics.GET("/athletes/:athleteId/trend", h.Athletic.Trend)
	}
}
