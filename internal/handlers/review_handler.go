package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwrzos/beerlog/internal/helpers"
	"github.com/mwrzos/beerlog/internal/models"
	"github.com/mwrzos/beerlog/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// sessionFromContext reads the claims AuthMiddleware stamped onto the
// request. Every protected handler re-checks here instead of caching a
// session anywhere.
func sessionFromContext(c *gin.Context) (*helpers.SessionClaims, uuid.UUID, bool) {
	claims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
		return nil, uuid.Nil, false
	}
	session, ok := claims.(*helpers.SessionClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("Invalid user claims"))
		return nil, uuid.Nil, false
	}
	ownerId, err := uuid.Parse(session.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid user ID in token"))
		return nil, uuid.Nil, false
	}
	return session, ownerId, true
}

func reviewStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingBeerName),
		errors.Is(err, models.ErrMissingBrewery),
		errors.Is(err, models.ErrMissingOverallRating):
		return http.StatusUnprocessableEntity
	case errors.Is(err, helpers.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrReviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSubmissionInFlight):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// CreateReview accepts both the quick and the detailed form; the service
// pipeline fills the defaults so both write the same record shape. The
// X-Form-ID header identifies the form instance for the duplicate-submit
// guard.
func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ownerId, ok := sessionFromContext(c)
		if !ok {
			return
		}

		var draft models.ReviewDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		formId := c.GetHeader("X-Form-ID")

		created, err := r.CreateReview(c.Request.Context(), ownerId, session.Email, formId, &draft)
		if err != nil {
			c.JSON(reviewStatus(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "recenzja została zapisana"))
	}
}

func ListReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ownerId, ok := sessionFromContext(c)
		if !ok {
			return
		}

		filter := models.ParseListFilter(c.Query("filter"))
		sortBy := models.ParseListSort(c.Query("sort"))
		refresh := c.Query("refresh") == "true"

		pageSize, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || pageSize < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit"))
			return
		}
		shown, err := strconv.Atoi(c.DefaultQuery("shown", "0"))
		if err != nil || shown < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid shown offset"))
			return
		}

		page, total, err := r.ListReviews(c.Request.Context(), ownerId, filter, sortBy, pageSize, shown, refresh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.PagedResponse(page, shown, pageSize, total))
	}
}

// GetReview returns the detail projection with the rendered star row and
// mood glyph.
func GetReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ownerId, ok := sessionFromContext(c)
		if !ok {
			return
		}

		reviewId, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid review ID"))
			return
		}

		review, err := r.GetReview(c.Request.Context(), ownerId, reviewId)
		if err != nil {
			c.JSON(reviewStatus(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(models.NewReviewDetail(review), ""))
	}
}

func UpdateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ownerId, ok := sessionFromContext(c)
		if !ok {
			return
		}

		reviewId, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid review ID"))
			return
		}

		var draft models.ReviewDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := r.UpdateReview(c.Request.Context(), ownerId, reviewId, &draft)
		if err != nil {
			c.JSON(reviewStatus(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "recenzja została zaktualizowana"))
	}
}

func DeleteReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ownerId, ok := sessionFromContext(c)
		if !ok {
			return
		}

		reviewId, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid review ID"))
			return
		}

		if err := r.DeleteReview(c.Request.Context(), ownerId, reviewId); err != nil {
			c.JSON(reviewStatus(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "recenzja została usunięta"))
	}
}
