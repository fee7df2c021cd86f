package services

import (
	"math"
	"movie-store-server/models"

	"gorm.io/gorm"
)

// Sort keys accepted by the catalog listing. Anything else falls back to
// title descending.
const (
	SortTitleAsc  = "title"
	SortTitleDesc = "title_desc"
	SortDateAsc   = "Date"
	SortDateDesc  = "date_desc"
	SortPriceAsc  = "Price"
	SortPriceDesc = "price_desc"
)

type MoviePage struct {
	Items      []models.Movie `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
}

// QueryMovies lists the catalog filtered by a free-text search over title,
// genre, description and director, sorted and paginated. Pages are 1-based;
// a page past the end returns an empty page, not an error. The lower() LIKE
// comparison keeps the search case-insensitive on any store.
func QueryMovies(db *gorm.DB, page, pageSize int, sortOrder, searchTerm string) (*MoviePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 6
	}

	query := db.Model(&models.Movie{})
	if searchTerm != "" {
		like := "%" + searchTerm + "%"
		query = query.Where(
			"lower(title) LIKE lower(?) OR lower(genre) LIKE lower(?) OR lower(description) LIKE lower(?) OR lower(director) LIKE lower(?)",
			like, like, like, like)
	}

	// Session makes the filtered query reusable for both the count and the
	// page fetch.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var order string
	switch sortOrder {
	case "", SortTitleAsc:
		order = "title ASC"
	case SortTitleDesc:
		order = "title DESC"
	case SortDateAsc:
		order = "release_date ASC"
	case SortDateDesc:
		order = "release_date DESC"
	case SortPriceAsc:
		order = "price ASC"
	case SortPriceDesc:
		order = "price DESC"
	default:
		order = "title DESC"
	}

	var items []models.Movie
	err := query.Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("MovieActors.Actor").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &MoviePage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}
