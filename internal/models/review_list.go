package models

import (
	"sort"
)

// ListFilter selects a rating-threshold subset of the snapshot. Favorites
// and wishlist split on the 1-10 overall rating; a review with no rating
// classifies as wishlist.
type ListFilter string

const (
	FilterAll       ListFilter = "all"
	FilterFavorites ListFilter = "favorites"
	FilterWishlist  ListFilter = "wishlist"

	FavoriteThreshold = 7
)

// ListSort orders the filtered snapshot. The backing store has no
// multi-field ordering, so everything happens here.
type ListSort string

const (
	SortByDate   ListSort = "date"
	SortByRating ListSort = "rating"
	SortByName   ListSort = "name"
	SortByStyle  ListSort = "style"
)

func ParseListFilter(s string) ListFilter {
	switch ListFilter(s) {
	case FilterFavorites, FilterWishlist:
		return ListFilter(s)
	}
	return FilterAll
}

func ParseListSort(s string) ListSort {
	switch ListSort(s) {
	case SortByRating, SortByName, SortByStyle:
		return ListSort(s)
	}
	return SortByDate
}

// FilterReviews returns the members of snapshot matching f, preserving the
// snapshot order. The input is never mutated.
func FilterReviews(snapshot []*Review, f ListFilter) []*Review {
	out := make([]*Review, 0, len(snapshot))
	for _, r := range snapshot {
		switch f {
		case FilterFavorites:
			if r.OverallRating >= FavoriteThreshold {
				out = append(out, r)
			}
		case FilterWishlist:
			if r.OverallRating < FavoriteThreshold {
				out = append(out, r)
			}
		default:
			out = append(out, r)
		}
	}
	return out
}

// SortReviews orders rs in place. Sorting is stable so ties keep the
// original fetch order; reviews without a creation timestamp sort last
// under the date ordering.
func SortReviews(rs []*Review, s ListSort) {
	switch s {
	case SortByRating:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].OverallRating > rs[j].OverallRating
		})
	case SortByName:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].BeerName < rs[j].BeerName
		})
	case SortByStyle:
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Style < rs[j].Style
		})
	default: // newest first
		sort.SliceStable(rs, func(i, j int) bool {
			a, b := rs[i].CreatedAt, rs[j].CreatedAt
			if a.IsZero() || b.IsZero() {
				return !a.IsZero() && b.IsZero()
			}
			return a.After(b)
		})
	}
}

// ListReviews applies filter, sort and pagination to a materialized
// snapshot: at most pageSize items starting after alreadyShown items
// already delivered. It never refetches and never mutates the snapshot, so
// repeated calls over the same snapshot are idempotent.
func ListReviews(snapshot []*Review, filter ListFilter, s ListSort, pageSize, alreadyShown int) []*Review {
	rs := FilterReviews(snapshot, filter)
	SortReviews(rs, s)

	if alreadyShown < 0 {
		alreadyShown = 0
	}
	if alreadyShown >= len(rs) {
		return []*Review{}
	}
	rs = rs[alreadyShown:]
	if pageSize > 0 && pageSize < len(rs) {
		rs = rs[:pageSize]
	}
	return rs
}
