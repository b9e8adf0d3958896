package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwrzos/beerlog/internal/helpers"
	"github.com/mwrzos/beerlog/internal/services"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			// Don't return error details in production
			c.JSON(500, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// AuthMiddleware is the route guard between the public and authenticated
// route sets. It validates the Supabase-issued token on every request,
// refreshing it once when expired, and stamps the session identity into
// the request context; handlers re-check that context rather than caching
// a session anywhere.
func AuthMiddleware(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized access",
				"error":   "JWT token not found in cookie",
			})
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(token)
		if err != nil {
			// Token validation failed, try to refresh
			refreshToken, refreshErr := c.Cookie("refresh_token")
			if refreshErr != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   err.Error(),
				})
				c.Abort()
				return
			}

			tokenRes, refreshErr := userService.RefreshToken(c.Request.Context(), refreshToken)
			if refreshErr != nil || tokenRes == nil || tokenRes.AccessToken == "" {
				logger.Error("Token refresh failed", "error", refreshErr)
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "Token expired and refresh failed",
				})
				c.Abort()
				return
			}

			logger.Info("Token refreshed",
				"user_id", tokenRes.User.ID,
				"expires_in", tokenRes.ExpiresIn,
			)

			isProduction := os.Getenv("GIN_MODE") == "production"
			c.SetCookie(
				"access_token",
				tokenRes.AccessToken,
				tokenRes.ExpiresIn,
				"/",
				"", // let Gin pick current domain
				isProduction,
				true,
			)
			c.SetCookie(
				"refresh_token",
				tokenRes.RefreshToken,
				3600*24*30, // 30 days
				"/",
				"",
				isProduction,
				true,
			)

			token = tokenRes.AccessToken
			claims, err = helpers.ValidateToken(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "Refreshed token validation failed",
				})
				c.Abort()
				return
			}
		}

		// Profile lookup is best-effort; the token alone carries the
		// identity the guard needs.
		var displayName, avatarURL, createdAt string
		if userID, parseErr := uuid.Parse(claims.Subject); parseErr == nil {
			if user, err := userService.GetUser(c.Request.Context(), userID, token); err == nil {
				displayName = user.DisplayName
				avatarURL = user.AvatarURL
				createdAt = user.CreatedAt.Format(time.RFC3339)
			} else {
				logger.Info("Profile not found for session",
					"user_id", claims.Subject,
					"error", err,
				)
			}
		}
		if displayName == "" {
			displayName = claims.DisplayName()
		}

		session := &helpers.SessionClaims{
			CustomClaims: claims,
			UserID:       claims.Subject,
			Email:        claims.Email,
			DisplayName:  displayName,
			AvatarURL:    avatarURL,
			CreatedAt:    createdAt,
		}

		c.Set("user", session)
		c.Next()
	}
}
