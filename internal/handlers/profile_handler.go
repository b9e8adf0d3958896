package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mwrzos/beerlog/internal/models"
	"github.com/mwrzos/beerlog/internal/services"
)

// Profile returns the session identity plus the review statistics the
// profile page shows.
func Profile(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ownerId, ok := sessionFromContext(c)
		if !ok {
			return
		}

		stats, err := r.Stats(c.Request.Context(), ownerId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user_id":      session.UserID,
			"email":        session.Email,
			"display_name": session.DisplayName,
			"avatar_url":   session.AvatarURL,
			"member_since": session.CreatedAt,
			"stats":        stats,
		})
	}
}

func UploadAvatar(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userId, ok := sessionFromContext(c)
		if !ok {
			return
		}

		var req struct {
			ImageData string `json:"image_data" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		raw := req.ImageData
		if idx := strings.Index(raw, ";base64,"); idx >= 0 {
			raw = raw[idx+len(";base64,"):]
		}
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid image payload"))
			return
		}

		accessToken, err := c.Cookie("access_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("access token not found"))
			return
		}

		avatarURL, err := u.UploadAvatar(c.Request.Context(), userId, decoded, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{"avatar_url": avatarURL})
	}
}
