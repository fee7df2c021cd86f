package services

import (
	"testing"

	"movie-store-server/models"
)

func TestRecomputeMovieRating(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")

	for i, rating := range []int{5, 4, 3} {
		review := models.Review{UserID: uint(i + 1), MovieID: movie.ID, Rating: rating, Content: "ok"}
		if err := db.Create(&review).Error; err != nil {
			t.Fatalf("seeding review: %v", err)
		}
	}

	if err := RecomputeMovieRating(db, movie.ID); err != nil {
		t.Fatalf("recomputing: %v", err)
	}

	var got models.Movie
	db.First(&got, movie.ID)
	if got.Rating != 4.0 {
		t.Fatalf("expected rating 4.0, got %v", got.Rating)
	}
}

func TestRecomputeMovieRatingRoundsToOneDecimal(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")

	// mean of 5, 4, 4 is 4.333...
	for i, rating := range []int{5, 4, 4} {
		review := models.Review{UserID: uint(i + 1), MovieID: movie.ID, Rating: rating, Content: "ok"}
		if err := db.Create(&review).Error; err != nil {
			t.Fatalf("seeding review: %v", err)
		}
	}

	if err := RecomputeMovieRating(db, movie.ID); err != nil {
		t.Fatalf("recomputing: %v", err)
	}

	var got models.Movie
	db.First(&got, movie.ID)
	if got.Rating != 4.3 {
		t.Fatalf("expected rating 4.3, got %v", got.Rating)
	}
}

func TestRecomputeMovieRatingNoReviewsLeavesRating(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")

	review := models.Review{UserID: 1, MovieID: movie.ID, Rating: 2, Content: "meh"}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("seeding review: %v", err)
	}
	if err := RecomputeMovieRating(db, movie.ID); err != nil {
		t.Fatalf("recomputing: %v", err)
	}

	if err := db.Unscoped().Delete(&review).Error; err != nil {
		t.Fatalf("deleting review: %v", err)
	}
	if err := RecomputeMovieRating(db, movie.ID); err != nil {
		t.Fatalf("recomputing with no reviews: %v", err)
	}

	var got models.Movie
	db.First(&got, movie.ID)
	if got.Rating != 2.0 {
		t.Fatalf("expected last rating 2.0 to stick, got %v", got.Rating)
	}
}
