package models

import (
	"reflect"
	"testing"
	"time"
)

func snapshotForTest() []*Review {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*Review{
		{BeerName: "Zloty Bazant", Style: "Lager", OverallRating: 8, CreatedAt: base.Add(48 * time.Hour)},
		{BeerName: "Atak Chmielu", Style: "IPA", OverallRating: 9, CreatedAt: base.Add(24 * time.Hour)},
		{BeerName: "Porter Warszawski", Style: "Porter", OverallRating: 6, CreatedAt: base},
		{BeerName: "Bezoceny", Style: "Lager", OverallRating: 0}, // never rated, no timestamp
		{BeerName: "Ciechan Miodowe", Style: "Miodowe", OverallRating: 7, CreatedAt: base.Add(72 * time.Hour)},
	}
}

func names(rs []*Review) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.BeerName
	}
	return out
}

func TestFilterClassification(t *testing.T) {
	snap := snapshotForTest()

	for _, r := range FilterReviews(snap, FilterFavorites) {
		if r.OverallRating < FavoriteThreshold {
			t.Errorf("%s in favorites with rating %d", r.BeerName, r.OverallRating)
		}
	}
	for _, r := range FilterReviews(snap, FilterWishlist) {
		if r.OverallRating >= FavoriteThreshold {
			t.Errorf("%s in wishlist with rating %d", r.BeerName, r.OverallRating)
		}
	}

	favs := FilterReviews(snap, FilterFavorites)
	wish := FilterReviews(snap, FilterWishlist)
	if len(favs)+len(wish) != len(snap) {
		t.Errorf("favorites(%d) + wishlist(%d) != snapshot(%d)", len(favs), len(wish), len(snap))
	}

	// A review that was never rated belongs to the wishlist.
	found := false
	for _, r := range wish {
		if r.BeerName == "Bezoceny" {
			found = true
		}
	}
	if !found {
		t.Error("rating-less review missing from wishlist")
	}
}

func TestSortByDateNewestFirstUnratedLast(t *testing.T) {
	snap := snapshotForTest()
	got := names(ListReviews(snap, FilterAll, SortByDate, 0, 0))
	want := []string{"Ciechan Miodowe", "Zloty Bazant", "Atak Chmielu", "Porter Warszawski", "Bezoceny"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("date sort = %v, want %v", got, want)
	}
}

func TestSortByRatingDesc(t *testing.T) {
	snap := snapshotForTest()
	got := names(ListReviews(snap, FilterAll, SortByRating, 0, 0))
	want := []string{"Atak Chmielu", "Zloty Bazant", "Ciechan Miodowe", "Porter Warszawski", "Bezoceny"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rating sort = %v, want %v", got, want)
	}
}

func TestSortByNameAsc(t *testing.T) {
	snap := snapshotForTest()
	got := names(ListReviews(snap, FilterAll, SortByName, 0, 0))
	want := []string{"Atak Chmielu", "Bezoceny", "Ciechan Miodowe", "Porter Warszawski", "Zloty Bazant"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("name sort = %v, want %v", got, want)
	}
}

func TestSortByStyleStableTies(t *testing.T) {
	snap := snapshotForTest()
	got := names(ListReviews(snap, FilterAll, SortByStyle, 0, 0))
	// The two lagers keep their original fetch order.
	want := []string{"Atak Chmielu", "Zloty Bazant", "Bezoceny", "Ciechan Miodowe", "Porter Warszawski"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("style sort = %v, want %v", got, want)
	}
}

func TestListIsIdempotent(t *testing.T) {
	snap := snapshotForTest()

	first := names(ListReviews(snap, FilterFavorites, SortByRating, 10, 0))
	second := names(ListReviews(snap, FilterFavorites, SortByRating, 10, 0))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated list over same snapshot differs: %v vs %v", first, second)
	}

	// The snapshot itself must not be reordered by listing.
	if snap[0].BeerName != "Zloty Bazant" || snap[4].BeerName != "Ciechan Miodowe" {
		t.Error("ListReviews mutated the snapshot order")
	}
}

func TestPaginationSlicesAreDisjointAndComplete(t *testing.T) {
	snap := snapshotForTest()

	pageOne := names(ListReviews(snap, FilterAll, SortByDate, 2, 0))
	pageTwo := names(ListReviews(snap, FilterAll, SortByDate, 2, 2))
	pageThree := names(ListReviews(snap, FilterAll, SortByDate, 2, 4))
	all := names(ListReviews(snap, FilterAll, SortByDate, 6, 0))

	combined := append(append(append([]string{}, pageOne...), pageTwo...), pageThree...)
	if !reflect.DeepEqual(combined, all) {
		t.Errorf("concatenated pages %v != full listing %v", combined, all)
	}

	seen := map[string]bool{}
	for _, n := range combined {
		if seen[n] {
			t.Errorf("%s delivered twice across pages", n)
		}
		seen[n] = true
	}
}

func TestPaginationPastEnd(t *testing.T) {
	snap := snapshotForTest()
	got := ListReviews(snap, FilterAll, SortByDate, 10, 99)
	if len(got) != 0 {
		t.Errorf("expected empty page past end, got %d items", len(got))
	}
}

func TestParseDefaults(t *testing.T) {
	if ParseListFilter("bogus") != FilterAll {
		t.Error("unknown filter should fall back to all")
	}
	if ParseListSort("bogus") != SortByDate {
		t.Error("unknown sort should fall back to date")
	}
}
