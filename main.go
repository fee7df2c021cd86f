package main

import (
	"fmt"
	"log"
	"movie-store-server/routes"
	"movie-store-server/services"
	"movie-store-server/storage"
	"movie-store-server/utils"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("APP_ENV") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	routes.Gateway = services.NewStripeGateway()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the storefront and the back-office dashboard
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Get("/me", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetCurrentUser)
	}

	movies := app.Party("/api/movies")
	{
		movies.Get("/", routes.ListMovies)
		movies.Get("/featured", routes.GetFeaturedMovies)
		movies.Get("/new-and-popular", routes.GetNewAndPopular)
		movies.Get("/{id:uint}", routes.GetMovie)
		movies.Get("/{id:uint}/play", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.PlayMovie)
		movies.Get("/{movieId:uint}/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ListMovieReviews)
		movies.Post("/{movieId:uint}/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateMovieReview)
	}

	reviews := app.Party("/api/reviews")
	{
		reviews.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteReview)
	}

	cart := app.Party("/api/cart", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		cart.Get("/", routes.GetCart)
		cart.Get("/count", routes.GetCartItemCount)
		cart.Post("/{movieId:uint}", routes.AddToCart)
		cart.Delete("/{movieId:uint}", routes.RemoveFromCart)
		cart.Post("/create-payment-intent", routes.CreatePaymentIntent)
		cart.Post("/checkout", routes.ProcessPaymentSuccess)
	}

	wishlist := app.Party("/api/wishlist", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		wishlist.Get("/", routes.GetWishlist)
		wishlist.Post("/{movieId:uint}", routes.AddToWishlist)
		wishlist.Delete("/{movieId:uint}", routes.RemoveFromWishlist)
	}

	purchases := app.Party("/api/purchases", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		purchases.Get("/", routes.GetUserPurchases)
		purchases.Get("/{id:uint}", routes.GetPurchase)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/dashboard", routes.AdminDashboard)
		admin.Get("/movies", routes.AdminListMovies)
		admin.Post("/movies", routes.AdminCreateMovie)
		admin.Put("/movies/{id:uint}", routes.AdminUpdateMovie)
		admin.Delete("/movies/{id:uint}", routes.AdminDeleteMovie)
		admin.Post("/movies/{movieId:uint}/actors", routes.AdminAddActorToMovie)
		admin.Delete("/movies/{movieId:uint}/actors/{actorId:uint}", routes.AdminRemoveActorFromMovie)
		admin.Get("/actors", routes.AdminListActors)
		admin.Post("/actors", routes.AdminCreateActor)
		admin.Put("/actors/{id:uint}", routes.AdminUpdateActor)
		admin.Delete("/actors/{id:uint}", routes.AdminDeleteActor)
		admin.Get("/users", routes.AdminListUsers)
		admin.Patch("/users/{id:uint}/role", routes.AdminToggleAdmin)
		admin.Get("/reviews", routes.AdminListReviews)
		admin.Delete("/reviews/{id:uint}", routes.AdminDeleteReview)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
