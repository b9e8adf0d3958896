package models

// StarState is one of the five star slots on the detail page.
type StarState string

const (
	StarFull  StarState = "full"
	StarHalf  StarState = "half"
	StarEmpty StarState = "empty"
)

// RenderStars maps the 1-10 overall rating onto five star slots: one full
// star per two points, a half star for an odd remainder.
func RenderStars(rating10 int) [5]StarState {
	var stars [5]StarState
	if rating10 < 0 {
		rating10 = 0
	}
	if rating10 > 10 {
		rating10 = 10
	}

	filled := rating10 / 2
	for i := range stars {
		switch {
		case i < filled:
			stars[i] = StarFull
		case i == filled && rating10%2 >= 1:
			stars[i] = StarHalf
		default:
			stars[i] = StarEmpty
		}
	}
	return stars
}

// MoodNeutralGlyph is shown when a review carries no recognized mood.
const MoodNeutralGlyph = "🍺"

// RenderMood maps a mood tag to its display glyph. Unrecognized or absent
// values fall back to the neutral glyph, never an error.
func RenderMood(m Mood) string {
	switch m {
	case MoodHeart:
		return "❤️"
	case MoodStar:
		return "⭐"
	case MoodThumbUp:
		return "👍"
	case MoodThumbDown:
		return "👎"
	}
	return MoodNeutralGlyph
}

// ReviewDetail is the read-only detail projection: the stored record plus
// the rendered star row and mood glyph, so the client view stays dumb.
type ReviewDetail struct {
	Review    *Review      `json:"review"`
	Stars     [5]StarState `json:"stars"`
	MoodGlyph string       `json:"mood_glyph"`
}

func NewReviewDetail(r *Review) *ReviewDetail {
	return &ReviewDetail{
		Review:    r,
		Stars:     RenderStars(r.OverallRating),
		MoodGlyph: RenderMood(r.SelectedMood),
	}
}
