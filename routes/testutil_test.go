package routes

import (
	"fmt"
	"movie-store-server/models"
	"movie-store-server/storage"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-level storage.DB at a per-test in-memory
// sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Movie{},
		&models.Actor{},
		&models.MovieActor{},
		&models.Review{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	storage.DB = db
	return db
}

func seedTestMovie(t *testing.T, db *gorm.DB, title, price string) *models.Movie {
	t.Helper()

	movie := models.Movie{
		Title:       title,
		Genre:       "Drama",
		Price:       decimal.RequireFromString(price),
		ReleaseDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&movie).Error; err != nil {
		t.Fatalf("seeding movie %q: %v", title, err)
	}
	return &movie
}
