package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReviewDbName  = "beerlog"
	ReviewColName = "reviews"

	// StyleOther / ColorOther are the localized "Other" fallbacks the app
	// writes when the user leaves the field blank.
	StyleOther = "Inne"
	ColorOther = "Inne"

	// DefaultScale is the midpoint written for every 1-5 field the quick
	// form does not expose.
	DefaultScale = 3

	MinOverallRating = 1
	MaxOverallRating = 10
)

// Validation failures surfaced inline on the form; submission is never
// attempted when one of these applies.
var (
	ErrMissingBeerName      = errors.New("nazwa piwa jest wymagana")
	ErrMissingBrewery       = errors.New("browar jest wymagany")
	ErrMissingOverallRating = errors.New("ogólna ocena jest wymagana")
)

// Mood is the mutually-exclusive emotion tag a user may attach to a review.
type Mood string

const (
	MoodNone      Mood = ""
	MoodHeart     Mood = "heart"
	MoodStar      Mood = "star"
	MoodThumbUp   Mood = "thumbUp"
	MoodThumbDown Mood = "thumbDown"
)

// Valid reports whether m is one of the four defined moods or none.
func (m Mood) Valid() bool {
	switch m {
	case MoodNone, MoodHeart, MoodStar, MoodThumbUp, MoodThumbDown:
		return true
	}
	return false
}

// ReviewDraft is the raw form payload before validation. Zero means "unset"
// for every scale field; Normalize fills the defaults so the stored record
// always has every field present.
type ReviewDraft struct {
	BeerName    string `json:"beer_name"`
	Brewery     string `json:"brewery"`
	Style       string `json:"style"`
	TastingDate string `json:"tasting_date"`

	AromaIntensity int    `json:"aroma_intensity"`
	AromaQuality   int    `json:"aroma_quality"`
	AromaNotes     string `json:"aroma_notes"`

	Color   string `json:"color"`
	Clarity int    `json:"clarity"`
	Foam    int    `json:"foam"`

	TasteIntensity int    `json:"taste_intensity"`
	TasteBalance   int    `json:"taste_balance"`
	Bitterness     int    `json:"bitterness"`
	Sweetness      int    `json:"sweetness"`
	Acidity        int    `json:"acidity"`
	TasteNotes     string `json:"taste_notes"`

	Drinkability  int `json:"drinkability"`
	Complexity    int `json:"complexity"`
	OverallRating int `json:"overall_rating"`

	Comments     string `json:"comments"`
	SelectedMood Mood   `json:"selected_mood"`

	// PhotoData carries the raw uploaded file, base64-encoded. It is
	// normalized to a bounded data URI before the record is written.
	PhotoData string `json:"photo_data,omitempty"`
}

// SetMood replaces the current mood selection; the four moods are mutually
// exclusive, so picking a second one drops the first. Unknown values clear
// the selection.
func (d *ReviewDraft) SetMood(m Mood) {
	if !m.Valid() {
		m = MoodNone
	}
	d.SelectedMood = m
}

// Validate trims the required identity fields and checks the submission
// gate. Beer name is reported before brewery when both are missing.
func (d *ReviewDraft) Validate() error {
	if strings.TrimSpace(d.BeerName) == "" {
		return ErrMissingBeerName
	}
	if strings.TrimSpace(d.Brewery) == "" {
		return ErrMissingBrewery
	}
	if d.OverallRating <= 0 {
		return ErrMissingOverallRating
	}
	return nil
}

// Review is a user's structured tasting record for one beer. Constructed
// only through NormalizeReview, so every optional field is always present
// and defaulted; the quick and detailed forms produce structurally
// identical documents.
type Review struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	BeerName    string `bson:"beer_name" json:"beer_name" validate:"required"`
	Brewery     string `bson:"brewery" json:"brewery" validate:"required"`
	Style       string `bson:"style" json:"style"`
	TastingDate string `bson:"tasting_date" json:"tasting_date"`

	AromaIntensity int    `bson:"aroma_intensity" json:"aroma_intensity" validate:"min=1,max=5"`
	AromaQuality   int    `bson:"aroma_quality" json:"aroma_quality" validate:"min=1,max=5"`
	AromaNotes     string `bson:"aroma_notes" json:"aroma_notes"`

	Color   string `bson:"color" json:"color"`
	Clarity int    `bson:"clarity" json:"clarity" validate:"min=1,max=5"`
	Foam    int    `bson:"foam" json:"foam" validate:"min=1,max=5"`

	TasteIntensity int    `bson:"taste_intensity" json:"taste_intensity" validate:"min=1,max=5"`
	TasteBalance   int    `bson:"taste_balance" json:"taste_balance" validate:"min=1,max=5"`
	Bitterness     int    `bson:"bitterness" json:"bitterness" validate:"min=1,max=5"`
	Sweetness      int    `bson:"sweetness" json:"sweetness" validate:"min=1,max=5"`
	Acidity        int    `bson:"acidity" json:"acidity" validate:"min=1,max=5"`
	TasteNotes     string `bson:"taste_notes" json:"taste_notes"`

	Drinkability  int `bson:"drinkability" json:"drinkability" validate:"min=1,max=5"`
	Complexity    int `bson:"complexity" json:"complexity" validate:"min=1,max=5"`
	OverallRating int `bson:"overall_rating" json:"overall_rating" validate:"required,min=1,max=10"`

	Comments     string `bson:"comments" json:"comments"`
	SelectedMood Mood   `bson:"selected_mood" json:"selected_mood"`
	PhotoURL     string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`

	OwnerID    uuid.UUID `bson:"owner_id" json:"owner_id"`
	OwnerEmail string    `bson:"owner_email" json:"owner_email"`
	CreatedAt  time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt  time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (r *Review) BeforeCreate() error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	return nil
}

// clampScale keeps a detailed 1-5 field inside its bounds, defaulting unset
// (zero) values to the midpoint.
func clampScale(v int) int {
	switch {
	case v == 0:
		return DefaultScale
	case v < 1:
		return 1
	case v > 5:
		return 5
	}
	return v
}

// NormalizeReview validates a draft and assembles the stored record:
// identity fields trimmed, blank style/color replaced with the localized
// "Other", every scale field defaulted, the tasting date defaulted to the
// submission date. The photo is attached separately by the service once it
// has been normalized.
func NormalizeReview(d *ReviewDraft, now time.Time) (*Review, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	style := strings.TrimSpace(d.Style)
	if style == "" {
		style = StyleOther
	}
	color := strings.TrimSpace(d.Color)
	if color == "" {
		color = ColorOther
	}
	tastingDate := strings.TrimSpace(d.TastingDate)
	if tastingDate == "" {
		tastingDate = now.Format("2006-01-02")
	}

	rating := d.OverallRating
	if rating > MaxOverallRating {
		rating = MaxOverallRating
	}

	mood := d.SelectedMood
	if !mood.Valid() {
		mood = MoodNone
	}

	return &Review{
		BeerName:    strings.TrimSpace(d.BeerName),
		Brewery:     strings.TrimSpace(d.Brewery),
		Style:       style,
		TastingDate: tastingDate,

		AromaIntensity: clampScale(d.AromaIntensity),
		AromaQuality:   clampScale(d.AromaQuality),
		AromaNotes:     d.AromaNotes,

		Color:   color,
		Clarity: clampScale(d.Clarity),
		Foam:    clampScale(d.Foam),

		TasteIntensity: clampScale(d.TasteIntensity),
		TasteBalance:   clampScale(d.TasteBalance),
		Bitterness:     clampScale(d.Bitterness),
		Sweetness:      clampScale(d.Sweetness),
		Acidity:        clampScale(d.Acidity),
		TasteNotes:     d.TasteNotes,

		Drinkability:  clampScale(d.Drinkability),
		Complexity:    clampScale(d.Complexity),
		OverallRating: rating,

		Comments:     d.Comments,
		SelectedMood: mood,
	}, nil
}
