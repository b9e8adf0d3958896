package models

import (
	"errors"
	"testing"
	"time"
)

var submitTime = time.Date(2025, 6, 14, 18, 30, 0, 0, time.Local)

func TestValidateMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		draft ReviewDraft
		want  error
	}{
		{
			name:  "missing beer name",
			draft: ReviewDraft{BeerName: "", Brewery: "X", OverallRating: 5},
			want:  ErrMissingBeerName,
		},
		{
			name:  "whitespace beer name",
			draft: ReviewDraft{BeerName: "   ", Brewery: "X", OverallRating: 5},
			want:  ErrMissingBeerName,
		},
		{
			name:  "missing brewery",
			draft: ReviewDraft{BeerName: "X", Brewery: " ", OverallRating: 5},
			want:  ErrMissingBrewery,
		},
		{
			name:  "zero overall rating",
			draft: ReviewDraft{BeerName: "X", Brewery: "Y", OverallRating: 0},
			want:  ErrMissingOverallRating,
		},
		{
			name:  "beer name reported before brewery",
			draft: ReviewDraft{BeerName: "", Brewery: "", OverallRating: 0},
			want:  ErrMissingBeerName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.draft.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeTrimsIdentity(t *testing.T) {
	draft := &ReviewDraft{BeerName: " IPA ", Brewery: " Acme ", OverallRating: 5}

	review, err := NormalizeReview(draft, submitTime)
	if err != nil {
		t.Fatalf("NormalizeReview failed: %v", err)
	}

	if review.BeerName != "IPA" {
		t.Errorf("BeerName = %q, want %q", review.BeerName, "IPA")
	}
	if review.Brewery != "Acme" {
		t.Errorf("Brewery = %q, want %q", review.Brewery, "Acme")
	}
}

// A quick-form submission carries only identity and the overall rating; the
// normalized record must still have every detailed field populated so both
// form paths write structurally identical documents.
func TestNormalizeQuickSubmissionDefaults(t *testing.T) {
	draft := &ReviewDraft{BeerName: "Żywiec Porter", Brewery: "Grupa Żywiec", OverallRating: 8}

	review, err := NormalizeReview(draft, submitTime)
	if err != nil {
		t.Fatalf("NormalizeReview failed: %v", err)
	}

	scales := map[string]int{
		"AromaIntensity": review.AromaIntensity,
		"AromaQuality":   review.AromaQuality,
		"Clarity":        review.Clarity,
		"Foam":           review.Foam,
		"TasteIntensity": review.TasteIntensity,
		"TasteBalance":   review.TasteBalance,
		"Bitterness":     review.Bitterness,
		"Sweetness":      review.Sweetness,
		"Acidity":        review.Acidity,
		"Drinkability":   review.Drinkability,
		"Complexity":     review.Complexity,
	}
	for field, got := range scales {
		if got != DefaultScale {
			t.Errorf("%s = %d, want default %d", field, got, DefaultScale)
		}
	}

	if review.Style != StyleOther {
		t.Errorf("Style = %q, want %q", review.Style, StyleOther)
	}
	if review.Color != ColorOther {
		t.Errorf("Color = %q, want %q", review.Color, ColorOther)
	}
	if review.TastingDate != "2025-06-14" {
		t.Errorf("TastingDate = %q, want submission date", review.TastingDate)
	}
	if review.SelectedMood != MoodNone {
		t.Errorf("SelectedMood = %q, want none", review.SelectedMood)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	draft := &ReviewDraft{
		BeerName:      "Pilsner",
		Brewery:       "Browar",
		Style:         "Pils",
		TastingDate:   "2025-01-02",
		Bitterness:    5,
		Clarity:       1,
		OverallRating: 7,
		SelectedMood:  MoodStar,
	}

	review, err := NormalizeReview(draft, submitTime)
	if err != nil {
		t.Fatalf("NormalizeReview failed: %v", err)
	}

	if review.Style != "Pils" {
		t.Errorf("Style = %q, want %q", review.Style, "Pils")
	}
	if review.TastingDate != "2025-01-02" {
		t.Errorf("TastingDate = %q, want explicit date", review.TastingDate)
	}
	if review.Bitterness != 5 || review.Clarity != 1 {
		t.Errorf("scale fields changed: bitterness=%d clarity=%d", review.Bitterness, review.Clarity)
	}
	if review.SelectedMood != MoodStar {
		t.Errorf("SelectedMood = %q, want %q", review.SelectedMood, MoodStar)
	}
}

func TestNormalizeClampsScales(t *testing.T) {
	draft := &ReviewDraft{
		BeerName:      "X",
		Brewery:       "Y",
		Foam:          9,
		Acidity:       -2,
		OverallRating: 99,
	}

	review, err := NormalizeReview(draft, submitTime)
	if err != nil {
		t.Fatalf("NormalizeReview failed: %v", err)
	}

	if review.Foam != 5 {
		t.Errorf("Foam = %d, want clamped 5", review.Foam)
	}
	if review.Acidity != 1 {
		t.Errorf("Acidity = %d, want clamped 1", review.Acidity)
	}
	if review.OverallRating != MaxOverallRating {
		t.Errorf("OverallRating = %d, want clamped %d", review.OverallRating, MaxOverallRating)
	}
}

func TestSetMoodIsExclusive(t *testing.T) {
	var draft ReviewDraft

	draft.SetMood(MoodHeart)
	if draft.SelectedMood != MoodHeart {
		t.Fatalf("SelectedMood = %q, want heart", draft.SelectedMood)
	}

	// Picking a second mood replaces the first, never adds.
	draft.SetMood(MoodThumbDown)
	if draft.SelectedMood != MoodThumbDown {
		t.Errorf("SelectedMood = %q, want thumbDown", draft.SelectedMood)
	}

	draft.SetMood(Mood("confetti"))
	if draft.SelectedMood != MoodNone {
		t.Errorf("SelectedMood = %q, want none after unknown value", draft.SelectedMood)
	}
}
