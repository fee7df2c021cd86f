package routes

import (
	"errors"
	"movie-store-server/models"
	"movie-store-server/storage"
	"movie-store-server/utils"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetWishlist returns the user's saved movies, flagging the ones already in
// their cart.
func GetWishlist(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var items []models.WishlistItem
	if err := storage.DB.Preload("Movie").
		Where("user_id = ?", userID).
		Order("added_date DESC").
		Find(&items).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var cartMovieIDs []uint
	storage.DB.Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Pluck("movie_id", &cartMovieIDs)

	ctx.JSON(iris.Map{
		"success":       true,
		"wishlistItems": items,
		"moviesInCart":  cartMovieIDs,
	})
}

// AddToWishlist saves a movie for later. Adding a movie twice is a no-op.
func AddToWishlist(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	movieID := ctx.Params().GetUintDefault("movieId", 0)
	if movieID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid movie ID", ctx)
		return
	}

	var movie models.Movie
	if err := storage.DB.First(&movie, movieID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Movie not found", ctx)
		return
	}

	var existing models.WishlistItem
	err := storage.DB.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&existing).Error
	if err == nil {
		ctx.JSON(iris.Map{"success": true, "message": "Item added to wishlist"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	item := models.WishlistItem{
		UserID:    userID,
		MovieID:   movieID,
		AddedDate: time.Now().UTC(),
	}
	if err := storage.DB.Create(&item).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Item added to wishlist"})
}

// RemoveFromWishlist deletes the saved-for-later marker. Removing a movie
// that was never saved succeeds silently.
func RemoveFromWishlist(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	movieID := ctx.Params().GetUintDefault("movieId", 0)
	if movieID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid movie ID", ctx)
		return
	}

	if err := storage.DB.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.WishlistItem{}).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Item removed from wishlist"})
}
