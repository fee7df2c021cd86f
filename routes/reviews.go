package routes

import (
	"errors"
	"movie-store-server/models"
	"movie-store-server/services"
	"movie-store-server/storage"
	"movie-store-server/utils"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"required,max=1000"`
}

// ListMovieReviews returns a movie's reviews plus whether the current user
// may still review it.
func ListMovieReviews(ctx iris.Context) {
	movieID := ctx.Params().GetUintDefault("movieId", 0)
	if movieID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid movie ID", ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	hasExistingReview := false
	if v := ctx.Values().Get("userID"); v != nil {
		if userID, ok := v.(uint); ok {
			var existing models.Review
			if err := storage.DB.Where("movie_id = ? AND user_id = ?", movieID, userID).
				First(&existing).Error; err == nil {
				hasExistingReview = true
			}
		}
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"reviews":           reviews,
			"reviewCount":       len(reviews),
			"hasExistingReview": hasExistingReview,
			"canReview":         !hasExistingReview,
		},
	})
}

// CreateMovieReview stores a one-shot review and refreshes the movie's
// derived rating. A second review by the same user is rejected without
// touching the rating.
func CreateMovieReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	movieID := ctx.Params().GetUintDefault("movieId", 0)
	if movieID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid movie ID", ctx)
		return
	}

	var req CreateReviewRequest
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var movie models.Movie
	if err := storage.DB.First(&movie, movieID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Movie not found", ctx)
		return
	}

	var existing models.Review
	err := storage.DB.Where("movie_id = ? AND user_id = ?", movieID, userID).First(&existing).Error
	if err == nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"success": false, "message": "You've already reviewed this movie."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	review := models.Review{
		UserID:     userID,
		MovieID:    movieID,
		Rating:     req.Rating,
		Content:    req.Content,
		ReviewDate: time.Now().UTC(),
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := services.RecomputeMovieRating(storage.DB, movieID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Thank you for your review!", "data": review})
}

// DeleteReview removes a review (owner or admin only) and refreshes the
// movie's derived rating.
func DeleteReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	reviewID := ctx.Params().GetUintDefault("id", 0)
	if reviewID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid review ID", ctx)
		return
	}

	var review models.Review
	if err := storage.DB.First(&review, reviewID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Review not found", ctx)
		return
	}

	role, _ := ctx.Values().Get("role").(string)
	if review.UserID != userID && role != "admin" && role != "super_admin" {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Unscoped().Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := services.RecomputeMovieRating(storage.DB, review.MovieID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Review deleted successfully."})
}
