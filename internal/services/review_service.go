package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwrzos/beerlog/internal/helpers"
	"github.com/mwrzos/beerlog/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrSubmissionInFlight means a create for the same form instance has not
// finished yet; the repeated submit is treated as a no-op.
var ErrSubmissionInFlight = errors.New("submission already in flight")

type ReviewService struct {
	reviewsRepo models.ReviewsRepo

	// inFlight tracks owner+form submissions so rapid repeated submits
	// can't create duplicate records.
	inFlightMu sync.Mutex
	inFlight   map[string]struct{}

	// snapshots holds each owner's materialized review set for the
	// browsing session. Replacement is last-write-wins; the aggregator
	// never refetches mid-list.
	snapMu    sync.RWMutex
	snapshots map[uuid.UUID][]*models.Review
}

func NewReviewService(reviewsRepo models.ReviewsRepo) *ReviewService {
	return &ReviewService{
		reviewsRepo: reviewsRepo,
		inFlight:    make(map[string]struct{}),
		snapshots:   make(map[uuid.UUID][]*models.Review),
	}
}

// decodePhoto turns the draft's base64 payload into the bounded inline
// data URI stored in the document. A decode failure is surfaced rather
// than swallowed, so a bad file never blanks an existing photo.
func decodePhoto(photoData string) (string, error) {
	raw := strings.TrimSpace(photoData)
	if raw == "" {
		return "", nil
	}

	// Accept a data URI as well as bare base64; browsers send either.
	if idx := strings.Index(raw, ";base64,"); idx >= 0 {
		raw = raw[idx+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 payload", helpers.ErrDecode)
	}

	return helpers.NormalizePhoto(decoded, helpers.MaxPhotoWidth)
}

func submissionKey(ownerId uuid.UUID, formId string) string {
	return ownerId.String() + "/" + formId
}

// beginSubmission registers an owner+form pair; false means one is already
// running.
func (rs *ReviewService) beginSubmission(ownerId uuid.UUID, formId string) bool {
	rs.inFlightMu.Lock()
	defer rs.inFlightMu.Unlock()

	key := submissionKey(ownerId, formId)
	if _, busy := rs.inFlight[key]; busy {
		return false
	}
	rs.inFlight[key] = struct{}{}
	return true
}

func (rs *ReviewService) endSubmission(ownerId uuid.UUID, formId string) {
	rs.inFlightMu.Lock()
	defer rs.inFlightMu.Unlock()
	delete(rs.inFlight, submissionKey(ownerId, formId))
}

// CreateReview runs the submission pipeline: validate and normalize the
// draft, normalize the photo, stamp ownership, persist. formId identifies
// the form instance for the duplicate-submit guard; both the quick and the
// detailed form feed the same pipeline and write structurally identical
// records.
func (rs *ReviewService) CreateReview(ctx context.Context, ownerId uuid.UUID, ownerEmail, formId string, draft *models.ReviewDraft) (*models.Review, error) {
	if ownerId == uuid.Nil {
		return nil, fmt.Errorf("invalid owner ID")
	}

	if formId != "" {
		if !rs.beginSubmission(ownerId, formId) {
			return nil, ErrSubmissionInFlight
		}
		defer rs.endSubmission(ownerId, formId)
	}

	now := time.Now()
	review, err := models.NormalizeReview(draft, now)
	if err != nil {
		return nil, err
	}

	photoURL, err := decodePhoto(draft.PhotoData)
	if err != nil {
		return nil, err
	}
	review.PhotoURL = photoURL

	review.OwnerID = ownerId
	review.OwnerEmail = ownerEmail
	review.CreatedAt = now
	review.UpdatedAt = now

	created, err := rs.reviewsRepo.CreateReview(ctx, review)
	if err != nil {
		return nil, err
	}

	rs.invalidateSnapshot(ownerId)
	return created, nil
}

// UpdateReview replaces every editable field with the normalized draft.
// Ownership and the creation timestamp are immutable; the stored photo is
// only touched when the draft carries a new one.
func (rs *ReviewService) UpdateReview(ctx context.Context, ownerId uuid.UUID, reviewId primitive.ObjectID, draft *models.ReviewDraft) (*models.Review, error) {
	if ownerId == uuid.Nil {
		return nil, fmt.Errorf("invalid owner ID")
	}

	normalized, err := models.NormalizeReview(draft, time.Now())
	if err != nil {
		return nil, err
	}

	fields := bson.M{
		"beer_name":    normalized.BeerName,
		"brewery":      normalized.Brewery,
		"style":        normalized.Style,
		"tasting_date": normalized.TastingDate,

		"aroma_intensity": normalized.AromaIntensity,
		"aroma_quality":   normalized.AromaQuality,
		"aroma_notes":     normalized.AromaNotes,

		"color":   normalized.Color,
		"clarity": normalized.Clarity,
		"foam":    normalized.Foam,

		"taste_intensity": normalized.TasteIntensity,
		"taste_balance":   normalized.TasteBalance,
		"bitterness":      normalized.Bitterness,
		"sweetness":       normalized.Sweetness,
		"acidity":         normalized.Acidity,
		"taste_notes":     normalized.TasteNotes,

		"drinkability":   normalized.Drinkability,
		"complexity":     normalized.Complexity,
		"overall_rating": normalized.OverallRating,

		"comments":      normalized.Comments,
		"selected_mood": normalized.SelectedMood,
	}

	if strings.TrimSpace(draft.PhotoData) != "" {
		photoURL, err := decodePhoto(draft.PhotoData)
		if err != nil {
			return nil, err
		}
		fields["photo_url"] = photoURL
	}

	updated, err := rs.reviewsRepo.UpdateReview(ctx, ownerId, reviewId, fields)
	if err != nil {
		return nil, err
	}

	rs.invalidateSnapshot(ownerId)
	return updated, nil
}

func (rs *ReviewService) GetReview(ctx context.Context, ownerId uuid.UUID, reviewId primitive.ObjectID) (*models.Review, error) {
	if ownerId == uuid.Nil {
		return nil, fmt.Errorf("invalid owner ID")
	}
	return rs.reviewsRepo.GetReviewByID(ctx, ownerId, reviewId)
}

func (rs *ReviewService) DeleteReview(ctx context.Context, ownerId uuid.UUID, reviewId primitive.ObjectID) error {
	if ownerId == uuid.Nil {
		return fmt.Errorf("invalid owner ID")
	}
	if err := rs.reviewsRepo.DeleteReview(ctx, ownerId, reviewId); err != nil {
		return err
	}
	rs.invalidateSnapshot(ownerId)
	return nil
}

func (rs *ReviewService) invalidateSnapshot(ownerId uuid.UUID) {
	rs.snapMu.Lock()
	delete(rs.snapshots, ownerId)
	rs.snapMu.Unlock()
}

// Snapshot returns the owner's materialized review set, fetching it in one
// unfiltered query when missing or when refresh is requested. A fetch that
// loses the race simply overwrites the reference (last-write-wins).
func (rs *ReviewService) Snapshot(ctx context.Context, ownerId uuid.UUID, refresh bool) ([]*models.Review, error) {
	if !refresh {
		rs.snapMu.RLock()
		snap, ok := rs.snapshots[ownerId]
		rs.snapMu.RUnlock()
		if ok {
			return snap, nil
		}
	}

	snap, err := rs.reviewsRepo.GetReviewsByOwner(ctx, ownerId)
	if err != nil {
		return nil, err
	}

	rs.snapMu.Lock()
	rs.snapshots[ownerId] = snap
	rs.snapMu.Unlock()

	return snap, nil
}

// ListReviews pages through the owner's snapshot with the given filter and
// sort. total is the filtered count, so the client knows when it has paged
// everything in.
func (rs *ReviewService) ListReviews(ctx context.Context, ownerId uuid.UUID, filter models.ListFilter, sort models.ListSort, pageSize, alreadyShown int, refresh bool) ([]*models.Review, int, error) {
	if ownerId == uuid.Nil {
		return nil, 0, fmt.Errorf("invalid owner ID")
	}
	if alreadyShown < 0 || pageSize < 0 {
		return nil, 0, fmt.Errorf("invalid paging parameters")
	}

	snap, err := rs.Snapshot(ctx, ownerId, refresh)
	if err != nil {
		return nil, 0, err
	}

	total := len(models.FilterReviews(snap, filter))
	page := models.ListReviews(snap, filter, sort, pageSize, alreadyShown)
	return page, total, nil
}

// ProfileStats is the profile page summary computed from the owner's
// snapshot.
type ProfileStats struct {
	ReviewsCount  int     `json:"reviews_count"`
	AverageRating float64 `json:"average_rating"`
	FavoriteStyle string  `json:"favorite_style"`
}

// Stats summarizes the owner's reviews: count, mean overall rating on the
// 1-10 scale, and the most frequent style (earliest-seen wins a tie).
func (rs *ReviewService) Stats(ctx context.Context, ownerId uuid.UUID) (*ProfileStats, error) {
	snap, err := rs.Snapshot(ctx, ownerId, false)
	if err != nil {
		return nil, err
	}

	stats := &ProfileStats{ReviewsCount: len(snap)}
	if len(snap) == 0 {
		return stats, nil
	}

	sum := 0
	styleCounts := make(map[string]int)
	styleOrder := []string{}
	for _, r := range snap {
		sum += r.OverallRating
		if _, seen := styleCounts[r.Style]; !seen {
			styleOrder = append(styleOrder, r.Style)
		}
		styleCounts[r.Style]++
	}

	stats.AverageRating = float64(sum) / float64(len(snap))

	best := ""
	for _, style := range styleOrder {
		if best == "" || styleCounts[style] > styleCounts[best] {
			best = style
		}
	}
	stats.FavoriteStyle = best

	return stats, nil
}
