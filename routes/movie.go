package routes

import (
	"movie-store-server/models"
	"movie-store-server/services"
	"movie-store-server/storage"
	"movie-store-server/utils"
	"time"

	"github.com/kataras/iris/v12"
)

// ListMovies is the browsable catalog: free-text search, sort and 1-based
// pagination.
func ListMovies(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	pageSize := ctx.URLParamIntDefault("pageSize", 6)
	if pageSize > 50 {
		pageSize = 50
	}
	sortOrder := ctx.URLParamDefault("sort", "")
	searchTerm := ctx.URLParamDefault("q", "")

	result, err := services.QueryMovies(storage.DB, page, pageSize, sortOrder, searchTerm)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, result.Items, result.Page, result.PageSize, result.Total, result.TotalPages)
}

// GetMovie returns a single movie with cast and reviews.
func GetMovie(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid movie ID", ctx)
		return
	}

	var movie models.Movie
	err := storage.DB.
		Preload("MovieActors.Actor").
		Preload("Reviews.User").
		First(&movie, id).Error
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Movie not found", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": movie})
}

// GetFeaturedMovies returns the five most recent releases for the home
// page carousel.
func GetFeaturedMovies(ctx iris.Context) {
	var movies []models.Movie
	if err := storage.DB.Order("release_date DESC").Limit(5).Find(&movies).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": movies})
}

// GetNewAndPopular returns the releases of the last 30 days and the best
// rated movies of the catalog.
func GetNewAndPopular(ctx iris.Context) {
	cutoff := time.Now().AddDate(0, 0, -30)

	var recent []models.Movie
	if err := storage.DB.Where("release_date >= ?", cutoff).
		Order("release_date DESC").Limit(12).Find(&recent).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var popular []models.Movie
	if err := storage.DB.Where("rating >= ?", 3.0).
		Order("rating DESC").Limit(12).Find(&popular).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"recentMovies":  recent,
			"popularMovies": popular,
		},
	})
}

// PlayMovie gates the full-length stream behind a purchase. Trailers are
// free; admins can always play.
func PlayMovie(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid movie ID", ctx)
		return
	}

	var movie models.Movie
	if err := storage.DB.First(&movie, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Movie not found", ctx)
		return
	}

	if ctx.URLParamBoolDefault("trailer", false) {
		ctx.JSON(iris.Map{"success": true, "videoURL": movie.VideoURL, "isTrailer": true})
		return
	}

	role, _ := ctx.Values().Get("role").(string)
	if role != "admin" && role != "super_admin" {
		var purchased int64
		storage.DB.Model(&models.PurchaseItem{}).
			Joins("JOIN purchases ON purchases.id = purchase_items.purchase_id").
			Where("purchases.user_id = ? AND purchase_items.movie_id = ?", userID, id).
			Count(&purchased)
		if purchased == 0 {
			utils.CreateError(iris.StatusForbidden, "Forbidden", "Purchase this movie to play it", ctx)
			return
		}
	}

	ctx.JSON(iris.Map{"success": true, "videoURL": movie.VideoURL, "isTrailer": false})
}
