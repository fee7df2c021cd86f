package routes

import (
	"errors"
	"movie-store-server/services"
	"movie-store-server/storage"
	"movie-store-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// Gateway is the payment processor used by the cart handlers. main wires the
// Stripe implementation; tests swap in a fake.
var Gateway services.PaymentGateway

func cartEngine() *services.CartService {
	return services.NewCartService(storage.DB, Gateway)
}

type FinalizeCheckoutInput struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

// GetCart returns the user's cart rows with the displayed total.
func GetCart(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	engine := cartEngine()
	items, err := engine.GetCartItems(userID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":     true,
		"cartItems":   items,
		"totalAmount": services.CartTotal(items),
	})
}

// AddToCart adds one unit of the movie to the user's cart. Repeat adds for
// the same movie merge into the existing row.
func AddToCart(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	movieID := ctx.Params().GetUintDefault("movieId", 0)
	if movieID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid movie ID", ctx)
		return
	}

	engine := cartEngine()
	added, err := engine.AddToCart(userID, movieID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Movie not found", ctx)
		return
	}
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	count, _ := engine.CartCount(userID)

	if added {
		ctx.JSON(iris.Map{"success": true, "message": "Item added to cart", "count": count})
		return
	}
	ctx.JSON(iris.Map{"success": false, "message": "Movie is already in your cart", "count": count})
}

// RemoveFromCart decrements or removes the movie from the user's cart.
// Removing a movie that is not carted succeeds silently.
func RemoveFromCart(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	movieID := ctx.Params().GetUintDefault("movieId", 0)
	if movieID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid movie ID", ctx)
		return
	}

	engine := cartEngine()
	if err := engine.RemoveFromCart(userID, movieID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	count, _ := engine.CartCount(userID)
	ctx.JSON(iris.Map{"success": true, "message": "Item removed from cart", "count": count})
}

// GetCartItemCount returns the badge count shown in the store header.
func GetCartItemCount(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	count, err := cartEngine().CartCount(userID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"count": count})
}

// CreatePaymentIntent asks the gateway for a payment intent covering the
// cart total plus tax and returns its client secret.
func CreatePaymentIntent(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	clientSecret, err := cartEngine().CreatePaymentIntent(userID)
	if errors.Is(err, services.ErrEmptyCart) {
		utils.CreateError(iris.StatusBadRequest, "Checkout Error", "Your cart is empty", ctx)
		return
	}
	if err != nil {
		utils.CreateError(iris.StatusBadGateway, "Payment Error", "Failed to create payment intent", ctx)
		return
	}

	ctx.JSON(iris.Map{"clientSecret": clientSecret})
}

// ProcessPaymentSuccess finalizes checkout after the browser confirms the
// card payment. The gateway's server-reported intent status is the only
// authorization gate; a client cannot forge success.
func ProcessPaymentSuccess(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input FinalizeCheckoutInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	purchase, err := cartEngine().FinalizeCheckout(userID, input.PaymentIntentID)
	if errors.Is(err, services.ErrEmptyCart) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"success": false, "message": "Cart is empty."})
		return
	}
	if errors.Is(err, services.ErrPaymentNotSucceeded) {
		ctx.StatusCode(iris.StatusPaymentRequired)
		ctx.JSON(iris.Map{"success": false, "message": "Payment failed."})
		return
	}
	if err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "message": "Checkout failed, please try again."})
		return
	}

	ctx.JSON(iris.Map{"success": true, "purchaseId": purchase.ID})
}
