package handlers

import (
	"time"

	"github.com/chachabrian/wodlog-backend/internal/middleware"
	"github.com/chachabrian/wodlog-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterOptions struct {
	AllowedOrigins []string
	// UploadDir is served at /uploads when media is stored locally.
	UploadDir string
}

func NewRouter(d *Deps, opts RouterOptions) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Cache == nil {
		d.Cache = services.NopStatsCache{}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) == 0 || (len(opts.AllowedOrigins) == 1 && opts.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = opts.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	api := r.Group("/api")
	{
		api.GET("/health", Health(d))

		// Public routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/request-otp", RequestOTP(d))
			authGroup.POST("/verify-otp", VerifyOTP(d))
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(d.Auth, d.Logger))
		{
			protected.GET("/user/profile", GetProfile(d))
			protected.PUT("/user/profile", UpdateProfile(d))

			protected.GET("/movements", ListMovements(d))
			protected.POST("/movements", CreateMovement(d))
			protected.GET("/movements/:id/stats", MovementStats(d))

			protected.GET("/pr-records", ListPRRecords(d))
			protected.POST("/pr-records", CreatePRRecord(d))
			protected.PUT("/pr-records/:id", UpdatePRRecord(d))
			protected.DELETE("/pr-records/:id", DeletePRRecord(d))

			protected.GET("/wods", ListWODs(d))
			protected.POST("/wods", CreateWOD(d))
			protected.GET("/wods/:id/stats", WODStats(d))

			protected.GET("/wod-results", ListWODResults(d))
			protected.POST("/wod-results", CreateWODResult(d))
			protected.PUT("/wod-results/:id", UpdateWODResult(d))
			protected.DELETE("/wod-results/:id", DeleteWODResult(d))

			protected.GET("/percent-calculator/:movement_id", PercentCalculator(d))
			protected.GET("/search", Search(d))

			if d.Media != nil {
				protected.POST("/media", UploadMedia(d))
			}
			if d.Hub != nil {
				protected.GET("/ws", WebSocketHandler(d))
			}
		}
	}

	return r
}
