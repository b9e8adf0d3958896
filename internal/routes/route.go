package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mwrzos/beerlog/internal/container"
	"github.com/mwrzos/beerlog/internal/handlers"
	"github.com/mwrzos/beerlog/internal/middleware"
)

// SetupRoutes configures the public and authenticated route sets with the
// dependency container.
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "X-Form-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "beerlog-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.CreateUser(container.UserService))
		v1.POST("/login", handlers.AuthenticateUser(container.UserService))
		v1.POST("/password-reset", handlers.SendPasswordReset(container.UserService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.Logger))

	protected.POST("/logout", handlers.Logout())
	protected.GET("/profile", handlers.Profile(container.ReviewService))
	protected.PATCH("/profile/avatar", handlers.UploadAvatar(container.UserService))

	reviewRoutes := protected.Group("/reviews")
	{
		// The quick and detailed forms share one create endpoint; the
		// pipeline defaults whatever the quick form leaves out.
		reviewRoutes.POST("/", handlers.CreateReview(container.ReviewService))
		reviewRoutes.GET("/", handlers.ListReviews(container.ReviewService))
		reviewRoutes.GET("/:id", handlers.GetReview(container.ReviewService))
		reviewRoutes.PATCH("/:id", handlers.UpdateReview(container.ReviewService))
		reviewRoutes.DELETE("/:id", handlers.DeleteReview(container.ReviewService))
	}

	return r
}
