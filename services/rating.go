package services

import (
	"math"
	"movie-store-server/models"

	"gorm.io/gorm"
)

// RecomputeMovieRating refreshes the movie's derived rating as the mean of
// its review ratings, rounded to one decimal. Called synchronously after
// every review create and delete. When no reviews remain the stored rating
// is left untouched.
func RecomputeMovieRating(db *gorm.DB, movieID uint) error {
	var reviews []models.Review
	if err := db.Where("movie_id = ?", movieID).Find(&reviews).Error; err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	var total float64
	for _, review := range reviews {
		total += float64(review.Rating)
	}
	avg := math.Round(total/float64(len(reviews))*10) / 10

	return db.Model(&models.Movie{}).Where("id = ?", movieID).Update("rating", avg).Error
}
