package routes

import (
	"movie-store-server/models"
	"movie-store-server/services"
	"movie-store-server/storage"
	"movie-store-server/utils"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
)

type AdminMovieInput struct {
	Title           string `json:"title" validate:"required,max=100"`
	Description     string `json:"description" validate:"max=500"`
	Genre           string `json:"genre" validate:"max=100"`
	Director        string `json:"director" validate:"max=100"`
	Price           string `json:"price" validate:"required"`
	ReleaseDate     string `json:"releaseDate" validate:"required"`
	DurationMinutes int    `json:"durationMinutes" validate:"min=0"`
	VideoURL        string `json:"videoURL" validate:"max=255"`
	ImageBase64     string `json:"imageBase64"`
	ImageURL        string `json:"imageURL" validate:"max=255"`
}

type AdminActorInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Bio         string `json:"bio" validate:"max=500"`
	DateOfBirth string `json:"dateOfBirth"`
	ImageBase64 string `json:"imageBase64"`
	ImageURL    string `json:"imageURL" validate:"max=255"`
}

type AdminCastInput struct {
	ActorID       uint   `json:"actorID" validate:"required"`
	CharacterName string `json:"characterName" validate:"max=100"`
}

// AdminDashboard returns the headline counts for the back-office landing
// page.
func AdminDashboard(ctx iris.Context) {
	var movieCount, actorCount, userCount, reviewCount, purchaseCount int64
	storage.DB.Model(&models.Movie{}).Count(&movieCount)
	storage.DB.Model(&models.Actor{}).Count(&actorCount)
	storage.DB.Model(&models.User{}).Count(&userCount)
	storage.DB.Model(&models.Review{}).Count(&reviewCount)
	storage.DB.Model(&models.Purchase{}).Count(&purchaseCount)

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"movies":    movieCount,
			"actors":    actorCount,
			"users":     userCount,
			"reviews":   reviewCount,
			"purchases": purchaseCount,
		},
	})
}

// AdminListMovies returns the paginated catalog for the back-office table.
func AdminListMovies(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	pageSize := ctx.URLParamIntDefault("pageSize", 20)
	sortOrder := ctx.URLParamDefault("sort", "")
	searchTerm := ctx.URLParamDefault("q", "")

	result, err := services.QueryMovies(storage.DB, page, pageSize, sortOrder, searchTerm)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, result.Items, result.Page, result.PageSize, result.Total, result.TotalPages)
}

func AdminCreateMovie(ctx iris.Context) {
	var input AdminMovieInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	movie, ok := movieFromInput(&input, ctx)
	if !ok {
		return
	}

	if input.ImageBase64 != "" {
		movie.ImageURL = storage.UploadBase64Image(input.ImageBase64, "movies/"+uuid.NewString())
	}

	if err := storage.DB.Create(movie).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "movie", movie.ID, nil, movie)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": movie})
}

func AdminUpdateMovie(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var existing models.Movie
	if err := storage.DB.First(&existing, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Movie not found", ctx)
		return
	}

	var input AdminMovieInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updated, ok := movieFromInput(&input, ctx)
	if !ok {
		return
	}

	before := existing
	existing.Title = updated.Title
	existing.Description = updated.Description
	existing.Genre = updated.Genre
	existing.Director = updated.Director
	existing.Price = updated.Price
	existing.ReleaseDate = updated.ReleaseDate
	existing.DurationMinutes = updated.DurationMinutes
	existing.VideoURL = updated.VideoURL

	if input.ImageBase64 != "" {
		if existing.ImageURL != "" {
			storage.DeleteImage(existing.ImageURL)
		}
		existing.ImageURL = storage.UploadBase64Image(input.ImageBase64, "movies/"+uuid.NewString())
	} else if input.ImageURL != "" {
		existing.ImageURL = input.ImageURL
	}

	if err := storage.DB.Save(&existing).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "movie", existing.ID, before, existing)
	ctx.JSON(iris.Map{"success": true, "data": existing})
}

func AdminDeleteMovie(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var movie models.Movie
	if err := storage.DB.First(&movie, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Movie not found", ctx)
		return
	}

	if err := storage.DB.Delete(&movie).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "movie", movie.ID, movie, nil)
	ctx.JSON(iris.Map{"success": true, "message": "Movie deleted"})
}

func AdminListActors(ctx iris.Context) {
	var actors []models.Actor
	if err := storage.DB.Order("name ASC").Find(&actors).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": actors})
}

func AdminCreateActor(ctx iris.Context) {
	var input AdminActorInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	actor := models.Actor{
		Name:     input.Name,
		Bio:      input.Bio,
		ImageURL: input.ImageURL,
	}
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid date of birth", ctx)
			return
		}
		actor.DateOfBirth = dob
	}
	if input.ImageBase64 != "" {
		actor.ImageURL = storage.UploadBase64Image(input.ImageBase64, "actors/"+uuid.NewString())
	}

	if err := storage.DB.Create(&actor).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "actor", actor.ID, nil, actor)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": actor})
}

func AdminUpdateActor(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var actor models.Actor
	if err := storage.DB.First(&actor, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Actor not found", ctx)
		return
	}

	var input AdminActorInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := actor
	actor.Name = input.Name
	actor.Bio = input.Bio
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid date of birth", ctx)
			return
		}
		actor.DateOfBirth = dob
	}
	if input.ImageBase64 != "" {
		if actor.ImageURL != "" {
			storage.DeleteImage(actor.ImageURL)
		}
		actor.ImageURL = storage.UploadBase64Image(input.ImageBase64, "actors/"+uuid.NewString())
	} else if input.ImageURL != "" {
		actor.ImageURL = input.ImageURL
	}

	if err := storage.DB.Save(&actor).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "update", "actor", actor.ID, before, actor)
	ctx.JSON(iris.Map{"success": true, "data": actor})
}

func AdminDeleteActor(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var actor models.Actor
	if err := storage.DB.First(&actor, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Actor not found", ctx)
		return
	}

	if err := storage.DB.Delete(&actor).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "actor", actor.ID, actor, nil)
	ctx.JSON(iris.Map{"success": true, "message": "Actor deleted"})
}

// AdminAddActorToMovie attaches an actor to a movie's cast with their
// character name.
func AdminAddActorToMovie(ctx iris.Context) {
	movieID := ctx.Params().GetUintDefault("movieId", 0)

	var input AdminCastInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var movie models.Movie
	if err := storage.DB.First(&movie, movieID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Movie not found", ctx)
		return
	}
	var actor models.Actor
	if err := storage.DB.First(&actor, input.ActorID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Actor not found", ctx)
		return
	}

	link := models.MovieActor{
		MovieID:       movieID,
		ActorID:       input.ActorID,
		CharacterName: input.CharacterName,
	}
	if err := storage.DB.Create(&link).Error; err != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "Actor already in cast", ctx)
		return
	}

	utils.Audit(ctx, "create", "movie_actor", movieID, nil, link)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": link})
}

func AdminRemoveActorFromMovie(ctx iris.Context) {
	movieID := ctx.Params().GetUintDefault("movieId", 0)
	actorID := ctx.Params().GetUintDefault("actorId", 0)

	if err := storage.DB.Where("movie_id = ? AND actor_id = ?", movieID, actorID).
		Delete(&models.MovieActor{}).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "movie_actor", movieID, nil, nil)
	ctx.JSON(iris.Map{"success": true, "message": "Actor removed from cast"})
}

// AdminListUsers returns the customer list for the back-office.
func AdminListUsers(ctx iris.Context) {
	var users []models.User
	if err := storage.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": users})
}

// AdminToggleAdmin grants or revokes the admin role. Super admins cannot be
// demoted here.
func AdminToggleAdmin(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "User not found", ctx)
		return
	}

	if user.Role == "super_admin" {
		utils.CreateForbidden(ctx)
		return
	}

	before := user.Role
	if user.Role == "admin" {
		user.Role = "user"
	} else {
		user.Role = "admin"
	}

	if err := storage.DB.Model(&user).Update("role", user.Role).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "toggle_admin", "user", user.ID, before, user.Role)
	ctx.JSON(iris.Map{"success": true, "data": iris.Map{"id": user.ID, "role": user.Role}})
}

// AdminListReviews returns the paginated review moderation queue.
func AdminListReviews(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	pageSize := ctx.URLParamIntDefault("pageSize", 10)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	storage.DB.Model(&models.Review{}).Count(&total)

	var reviews []models.Review
	if err := storage.DB.Preload("User").Preload("Movie").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	utils.JSONPage(ctx, reviews, page, pageSize, total, totalPages)
}

// AdminDeleteReview removes a review through moderation and refreshes the
// movie's derived rating, like an owner delete would.
func AdminDeleteReview(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Review not found", ctx)
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

	utils.Audit(ctx, "delete", "review", review.ID, review, nil)
	ctx.JSON(iris.Map{"success": true, "message": "Review deleted"})
}

func movieFromInput(input *AdminMovieInput, ctx iris.Context) (*models.Movie, bool) {
	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.IsNegative() {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid price", ctx)
		return nil, false
	}

	releaseDate, err := time.Parse("2006-01-02", input.ReleaseDate)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid release date", ctx)
		return nil, false
	}

	return &models.Movie{
		Title:           input.Title,
		Description:     input.Description,
		Genre:           input.Genre,
		Director:        input.Director,
		Price:           price,
		ReleaseDate:     releaseDate,
		DurationMinutes: input.DurationMinutes,
		VideoURL:        input.VideoURL,
		ImageURL:        input.ImageURL,
	}, true
}
