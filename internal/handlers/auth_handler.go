package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mwrzos/beerlog/internal/models"
	"github.com/mwrzos/beerlog/internal/services"
)

// authStatus picks the HTTP status for a mapped auth failure; anything
// else is a collaborator fault.
func authStatus(err error) int {
	var authErr *models.AuthError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func CreateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		createdUser, err := u.CreateUser(c.Request.Context(), &user)
		if err != nil {
			c.JSON(authStatus(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(createdUser, "konto zostało utworzone"))
	}
}

func AuthenticateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(models.MsgInvalidCredentials))
			return
		}

		tokenRes, err := u.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(authStatus(err), models.ErrorResponse(err.Error()))
			return
		}

		if tokenRes == nil || tokenRes.AccessToken == "" {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid token response"))
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"

		// Access token - expires with the session
		c.SetCookie(
			"access_token",
			tokenRes.AccessToken,
			tokenRes.ExpiresIn,
			"/",
			"", // let Gin pick current domain
			isProduction,
			true,
		)

		// Refresh token - expires in 30 days
		c.SetCookie(
			"refresh_token",
			tokenRes.RefreshToken,
			3600*24*30,
			"/",
			"",
			isProduction,
			true,
		)

		// Return user info but not tokens
		c.JSON(http.StatusOK, gin.H{
			"user": tokenRes.User,
		})
	}
}

// SendPasswordReset emails a reset link via the auth collaborator. Known
// failure codes surface their localized messages; success says nothing
// about whether the account exists.
func SendPasswordReset(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(models.MsgInvalidEmail))
			return
		}

		if err := u.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
			c.JSON(authStatus(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil,
			"Link do resetowania hasła został wysłany na Twój adres email."))
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "production"

		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "wylogowano"))
	}
}
