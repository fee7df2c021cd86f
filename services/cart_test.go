package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"movie-store-server/models"
)

func TestAddToCartMergesRepeatAdds(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")
	engine := NewCartService(db, &fakeGateway{})

	added, err := engine.AddToCart(1, movie.ID)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if !added {
		t.Fatal("expected first add to report a new row")
	}

	added, err = engine.AddToCart(1, movie.ID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if added {
		t.Fatal("expected second add to merge, not insert")
	}

	var items []models.CartItem
	if err := db.Where("user_id = ?", 1).Find(&items).Error; err != nil {
		t.Fatalf("listing cart rows: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one cart row, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}

	count, err := engine.CartCount(1)
	if err != nil {
		t.Fatalf("cart count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected badge count 2, got %d", count)
	}
}

func TestAddToCartLosesInsertRace(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")
	engine := NewCartService(db, &fakeGateway{})

	// Sneak a conflicting row in between the existence check and the
	// insert, the way a concurrent request would.
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("race_insert", func(tx *gorm.DB) {
		if tx.Statement.Table != "cart_items" || injected {
			return
		}
		injected = true
		db.Exec("INSERT INTO cart_items (user_id, movie_id, quantity, added_date) VALUES (?, ?, ?, ?)",
			1, movie.ID, 1, time.Now().UTC())
	})
	if err != nil {
		t.Fatalf("registering callback: %v", err)
	}

	added, err := engine.AddToCart(1, movie.ID)
	if err != nil {
		t.Fatalf("racing add: %v", err)
	}
	if added {
		t.Fatal("expected the losing insert to fold into an increment")
	}

	var item models.CartItem
	if err := db.Where("user_id = ? AND movie_id = ?", 1, movie.ID).First(&item).Error; err != nil {
		t.Fatalf("fetching cart row: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected merged quantity 2, got %d", item.Quantity)
	}
}

func TestAddToCartSurfacesStoreFailure(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")
	engine := NewCartService(db, &fakeGateway{})

	storeErr := errors.New("disk full")
	err := db.Callback().Create().Before("gorm:create").Register("failing_insert", func(tx *gorm.DB) {
		if tx.Statement.Table == "cart_items" {
			tx.AddError(storeErr)
		}
	})
	if err != nil {
		t.Fatalf("registering callback: %v", err)
	}

	// A create failure that is not a unique-index conflict must come back
	// as an error, not as "already in cart".
	_, err = engine.AddToCart(1, movie.ID)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the store failure surfaced, got %v", err)
	}

	var rows int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&rows)
	if rows != 0 {
		t.Fatalf("expected no cart row, got %d", rows)
	}
}

func TestAddToCartUnknownMovie(t *testing.T) {
	db := newTestDB(t)
	engine := NewCartService(db, &fakeGateway{})

	_, err := engine.AddToCart(1, 999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRemoveFromCart(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")
	engine := NewCartService(db, &fakeGateway{})

	// Not in the cart yet: silent no-op.
	if err := engine.RemoveFromCart(1, movie.ID); err != nil {
		t.Fatalf("removing absent movie: %v", err)
	}

	engine.AddToCart(1, movie.ID)
	engine.AddToCart(1, movie.ID)

	if err := engine.RemoveFromCart(1, movie.ID); err != nil {
		t.Fatalf("decrementing: %v", err)
	}
	var item models.CartItem
	if err := db.Where("user_id = ? AND movie_id = ?", 1, movie.ID).First(&item).Error; err != nil {
		t.Fatalf("fetching cart row: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected quantity 1 after decrement, got %d", item.Quantity)
	}

	if err := engine.RemoveFromCart(1, movie.ID); err != nil {
		t.Fatalf("removing last unit: %v", err)
	}
	var remaining int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("expected empty cart, got %d rows", remaining)
	}
}

func TestCheckoutAmountMinorUnits(t *testing.T) {
	cases := []struct {
		total string
		want  int64
	}{
		{"9.99", 1099},  // 9.99 + 10% tax = 10.989
		{"10.00", 1100}, // 10.00 + 10% tax = 11.00
		{"19.98", 2198}, // 19.98 + 10% tax = 21.978
		{"0.00", 0},
	}
	for _, tc := range cases {
		got := CheckoutAmountMinorUnits(decimal.RequireFromString(tc.total))
		if got != tc.want {
			t.Errorf("total %s: expected %d minor units, got %d", tc.total, tc.want, got)
		}
	}
}

func TestCreatePaymentIntentEmptyCart(t *testing.T) {
	db := newTestDB(t)
	engine := NewCartService(db, &fakeGateway{})

	_, err := engine.CreatePaymentIntent(1)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCreatePaymentIntentAmount(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")
	gateway := &fakeGateway{}
	engine := NewCartService(db, gateway)

	engine.AddToCart(7, movie.ID)
	engine.AddToCart(7, movie.ID)

	secret, err := engine.CreatePaymentIntent(7)
	if err != nil {
		t.Fatalf("creating intent: %v", err)
	}
	if secret == "" {
		t.Fatal("expected a client secret")
	}
	// 2 x 9.99 = 19.98, plus 10% tax = 21.978, rounded to 2198 minor units.
	if gateway.lastAmount != 2198 {
		t.Fatalf("expected 2198 minor units, got %d", gateway.lastAmount)
	}
	if gateway.lastCurrency != CheckoutCurrency {
		t.Fatalf("expected currency %q, got %q", CheckoutCurrency, gateway.lastCurrency)
	}
	if gateway.lastMetadata["userId"] != "7" {
		t.Fatalf("expected userId metadata 7, got %q", gateway.lastMetadata["userId"])
	}
}

func TestFinalizeCheckoutRequiresSucceededIntent(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")
	engine := NewCartService(db, &fakeGateway{status: "processing"})

	engine.AddToCart(1, movie.ID)

	_, err := engine.FinalizeCheckout(1, "pi_test_123")
	if !errors.Is(err, ErrPaymentNotSucceeded) {
		t.Fatalf("expected ErrPaymentNotSucceeded, got %v", err)
	}

	// The cart must be untouched after a rejected checkout.
	var rows int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&rows)
	if rows != 1 {
		t.Fatalf("expected cart to survive failed checkout, got %d rows", rows)
	}
}

func TestFinalizeCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	engine := NewCartService(db, &fakeGateway{status: IntentStatusSucceeded})

	_, err := engine.FinalizeCheckout(1, "pi_test_123")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestFinalizeCheckoutIntentUsedOnce(t *testing.T) {
	db := newTestDB(t)
	movie := seedMovie(t, db, "Heat", "9.99")
	engine := NewCartService(db, &fakeGateway{status: IntentStatusSucceeded})

	engine.AddToCart(1, movie.ID)
	if _, err := engine.FinalizeCheckout(1, "pi_test_123"); err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	// Replaying the same intent against a refilled cart must not mint a
	// second purchase.
	engine.AddToCart(1, movie.ID)
	if _, err := engine.FinalizeCheckout(1, "pi_test_123"); err == nil {
		t.Fatal("expected replayed intent to be rejected")
	}

	var purchases int64
	db.Model(&models.Purchase{}).Count(&purchases)
	if purchases != 1 {
		t.Fatalf("expected a single purchase, got %d", purchases)
	}
}

func TestFinalizeCheckout(t *testing.T) {
	db := newTestDB(t)
	heat := seedMovie(t, db, "Heat", "9.99")
	ronin := seedMovie(t, db, "Ronin", "4.50")
	engine := NewCartService(db, &fakeGateway{status: IntentStatusSucceeded})

	engine.AddToCart(1, heat.ID)
	engine.AddToCart(1, heat.ID)
	engine.AddToCart(1, ronin.ID)

	purchase, err := engine.FinalizeCheckout(1, "pi_test_123")
	if err != nil {
		t.Fatalf("finalizing checkout: %v", err)
	}

	// 2 x 9.99 + 1 x 4.50
	wantTotal := decimal.RequireFromString("24.48")
	if !purchase.TotalAmount.Equal(wantTotal) {
		t.Fatalf("expected total %s, got %s", wantTotal, purchase.TotalAmount)
	}
	if purchase.PaymentStatus != models.PaymentStatusSucceeded {
		t.Fatalf("expected status %q, got %q", models.PaymentStatusSucceeded, purchase.PaymentStatus)
	}
	if purchase.PaymentIntentID != "pi_test_123" {
		t.Fatalf("expected intent id recorded, got %q", purchase.PaymentIntentID)
	}

	var items []models.PurchaseItem
	if err := db.Where("purchase_id = ?", purchase.ID).Order("movie_id ASC").Find(&items).Error; err != nil {
		t.Fatalf("listing purchase items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 purchase items, got %d", len(items))
	}
	for _, item := range items {
		switch item.MovieID {
		case heat.ID:
			if item.Quantity != 2 {
				t.Errorf("expected quantity 2 for %q, got %d", heat.Title, item.Quantity)
			}
			if !item.PriceAtPurchase.Equal(heat.Price) {
				t.Errorf("expected price snapshot %s, got %s", heat.Price, item.PriceAtPurchase)
			}
		case ronin.ID:
			if item.Quantity != 1 {
				t.Errorf("expected quantity 1 for %q, got %d", ronin.Title, item.Quantity)
			}
		default:
			t.Errorf("unexpected movie %d in purchase", item.MovieID)
		}
	}

	// Purchased movies must be gone from the cart.
	var remaining int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("expected cart cleared, got %d rows", remaining)
	}

	// The cart can take the same movie again after checkout.
	added, err := engine.AddToCart(1, heat.ID)
	if err != nil {
		t.Fatalf("re-adding after checkout: %v", err)
	}
	if !added {
		t.Fatal("expected a fresh cart row after checkout")
	}
}
