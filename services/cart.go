package services

import (
	"errors"
	"fmt"
	"movie-store-server/models"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrPaymentNotSucceeded = errors.New("payment has not succeeded")
)

// Checkout charges a flat 10% tax on top of the cart total, in a single
// fixed currency.
const CheckoutCurrency = "qar"

var taxRate = decimal.RequireFromString("0.10")

// CartService maintains the authoritative (user, movie) -> quantity mapping
// and performs the irreversible cart-to-purchase conversion.
type CartService struct {
	db      *gorm.DB
	gateway PaymentGateway
}

func NewCartService(db *gorm.DB, gateway PaymentGateway) *CartService {
	return &CartService{db: db, gateway: gateway}
}

// AddToCart inserts a cart row for (userID, movieID) or bumps its quantity
// when the movie is already carted. Returns whether a new row was added.
// A concurrent add for the same pair loses the insert race on the unique
// index and is folded into an increment instead of failing.
func (s *CartService) AddToCart(userID, movieID uint) (added bool, err error) {
	var movie models.Movie
	if err := s.db.First(&movie, movieID).Error; err != nil {
		return false, err
	}

	var item models.CartItem
	findErr := s.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&item).Error
	if findErr == nil {
		return false, s.incrementQuantity(userID, movieID)
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return false, findErr
	}

	item = models.CartItem{
		UserID:    userID,
		MovieID:   movieID,
		Quantity:  1,
		AddedDate: time.Now().UTC(),
	}
	if createErr := s.db.Create(&item).Error; createErr != nil {
		// A concurrent request inserted the row between our check and the
		// create; the unique index rejected ours, so merge as an increment.
		// When the increment matches no row the failure was not a conflict
		// and must not be swallowed.
		inc := s.db.Model(&models.CartItem{}).
			Where("user_id = ? AND movie_id = ?", userID, movieID).
			UpdateColumn("quantity", gorm.Expr("quantity + 1"))
		if inc.Error != nil || inc.RowsAffected == 0 {
			return false, createErr
		}
		return false, nil
	}

	return true, nil
}

func (s *CartService) incrementQuantity(userID, movieID uint) error {
	return s.db.Model(&models.CartItem{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		UpdateColumn("quantity", gorm.Expr("quantity + 1")).Error
}

// RemoveFromCart decrements the row's quantity, deleting it at quantity 1.
// Removing a movie that is not in the cart is a no-op, not an error.
func (s *CartService) RemoveFromCart(userID, movieID uint) error {
	var item models.CartItem
	err := s.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if item.Quantity > 1 {
		return s.db.Model(&models.CartItem{}).
			Where("user_id = ? AND movie_id = ?", userID, movieID).
			UpdateColumn("quantity", gorm.Expr("quantity - 1")).Error
	}
	return s.db.Delete(&models.CartItem{}, item.ID).Error
}

// GetCartItems returns the user's cart rows with movie data preloaded.
func (s *CartService) GetCartItems(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.Preload("Movie").Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

// CartCount is the badge count: the sum of quantities, not the row count.
func (s *CartService) CartCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error
	return count, err
}

// CartTotal computes the displayed total for a set of cart rows.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Movie.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// CreatePaymentIntent asks the gateway for an intent covering the cart total
// plus tax, tagged with the user ID, and returns the client secret the
// browser needs to confirm the card payment. No purchase is persisted here.
func (s *CartService) CreatePaymentIntent(userID uint) (clientSecret string, err error) {
	items, err := s.GetCartItems(userID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	amount := CheckoutAmountMinorUnits(CartTotal(items))
	ref, err := s.gateway.CreateIntent(amount, CheckoutCurrency, map[string]string{
		"userId": strconv.FormatUint(uint64(userID), 10),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	return ref.ClientSecret, nil
}

// CheckoutAmountMinorUnits converts a cart total into the charged amount:
// total plus tax, rounded to minor currency units.
func CheckoutAmountMinorUnits(total decimal.Decimal) int64 {
	tax := total.Mul(taxRate)
	return total.Add(tax).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FinalizeCheckout converts the user's cart into a Purchase once the gateway
// reports the intent as succeeded. The purchase row, its items and the cart
// cleanup commit in one transaction; the total is recomputed server-side
// from current cart contents and never taken from the client.
func (s *CartService) FinalizeCheckout(userID uint, paymentIntentID string) (*models.Purchase, error) {
	items, err := s.GetCartItems(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	status, err := s.gateway.GetIntentStatus(paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment intent: %w", err)
	}
	if status != IntentStatusSucceeded {
		return nil, ErrPaymentNotSucceeded
	}

	purchase := models.Purchase{
		UserID:          userID,
		PurchaseDate:    time.Now().UTC(),
		TotalAmount:     CartTotal(items),
		PaymentIntentID: paymentIntentID,
		PaymentStatus:   models.PaymentStatusSucceeded,
	}
	movieIDs := make([]uint, 0, len(items))
	for _, item := range items {
		purchase.PurchaseItems = append(purchase.PurchaseItems, models.PurchaseItem{
			MovieID:         item.MovieID,
			PriceAtPurchase: item.Movie.Price,
			Quantity:        item.Quantity,
		})
		movieIDs = append(movieIDs, item.MovieID)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND movie_id IN ?", userID, movieIDs).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finalize checkout: %w", err)
	}

	return &purchase, nil
}
