package services

import (
	"fmt"
	"movie-store-server/models"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
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
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}

func seedMovie(t *testing.T, db *gorm.DB, title, price string) *models.Movie {
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

// fakeGateway records the intent it was asked to create and reports a
// canned status.
type fakeGateway struct {
	status       string
	createErr    error
	lastAmount   int64
	lastCurrency string
	lastMetadata map[string]string
}

func (g *fakeGateway) CreateIntent(amountMinorUnits int64, currency string, metadata map[string]string) (*PaymentIntentRef, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.lastAmount = amountMinorUnits
	g.lastCurrency = currency
	g.lastMetadata = metadata
	return &PaymentIntentRef{ID: "pi_test_123", ClientSecret: "pi_test_123_secret"}, nil
}

func (g *fakeGateway) GetIntentStatus(id string) (string, error) {
	return g.status, nil
}
