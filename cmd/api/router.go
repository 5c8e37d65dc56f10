package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ClientIPMiddleware(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupOTPRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// OTP ROUTES (public, rate limited per IP)
// ========================================
func setupOTPRoutes(v1 *gin.RouterGroup, c *container.Container) {
	limiter := middleware.NewIPRateLimiter(c.Config.RateLimit.OTPPerMinute, c.Config.RateLimit.OTPBurst)

	otp := v1.Group("/otp", limiter.Middleware())
	{
		otp.POST("/send", c.OTPHandler.Send)
		otp.POST("/verify", c.OTPHandler.Verify)
	}
}

// ========================================
// PUBLIC CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/categories", c.CategoryHandler.ListVisibleCategories)
	v1.GET("/products/:id", c.ProductHandler.GetProduct)
	v1.POST("/products/:id/reviews", middleware.AuthMiddleware(c.JWTManager), c.ProductHandler.AddReview)
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	user := v1.Group("/user", middleware.AuthMiddleware(c.JWTManager))
	{
		// Profile
		user.GET("/user-details/:id", c.UserHandler.GetProfile)
		user.PUT("/update-profile/:id", c.UserHandler.UpdateProfile)

		// Address book
		user.POST("/add-address", c.AddressHandler.AddAddress)
		user.GET("/get-addresses/:userId", c.AddressHandler.ListAddresses)
		user.GET("/default-address/:id", c.AddressHandler.GetDefault)
		user.PUT("/edit-address/:addressId", c.AddressHandler.UpdateAddress)
		user.DELETE("/delete-address/:addressId", c.AddressHandler.DeleteAddress)
		user.PATCH("/set-default-address/:addressId", c.AddressHandler.SetDefault)

		// Cart
		user.POST("/cart", c.CartHandler.AddItem)
		user.GET("/cart/:userId", c.CartHandler.GetCart)
		user.PUT("/cart", c.CartHandler.EditQuantity)
		user.DELETE("/cart", c.CartHandler.RemoveItem)

		// Wallet
		user.GET("/wallet/:userId", c.WalletHandler.GetWallet)
		user.POST("/wallet-payment", c.WalletHandler.Pay)

		// Coupons
		user.GET("/coupons", c.CouponHandler.ListAvailable)
		user.POST("/coupons/apply", c.CouponHandler.Apply)

		// Payments
		user.POST("/create-razorpay-order", c.PaymentHandler.CreateRazorpayOrder)
		user.POST("/verify-razorpay-payment", c.PaymentHandler.VerifyRazorpayPayment)

		// Orders
		user.POST("/place-order", c.OrderHandler.PlaceOrder)
		user.POST("/place-order-cart", c.OrderHandler.PlaceOrderFromCart)
		user.PUT("/cancel-order/:userId/:orderId", c.OrderHandler.CancelOrder)
		user.PUT("/return-order/:userId/:orderId", c.OrderHandler.ReturnOrder)
		user.POST("/update-order-status", c.OrderHandler.UpdatePaymentStatus)
		user.GET("/orders/:userId", c.OrderHandler.ListUserOrders)
		user.GET("/orders/:userId/:orderId", c.OrderHandler.GetUserOrder)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.AdminMiddleware(),
	)

	users := admin.Group("/users")
	{
		users.GET("", c.UserHandler.ListUsers)
		users.PATCH("/:id/status", c.UserHandler.UpdateStatus)
		users.DELETE("/:id", c.UserHandler.DeleteUser)
	}

	categories := admin.Group("/categories")
	{
		categories.POST("", c.CategoryHandler.CreateCategory)
		categories.GET("", c.CategoryHandler.ListCategories)
		categories.PUT("/:id", c.CategoryHandler.UpdateCategory)
		categories.PATCH("/:id/status", c.CategoryHandler.ToggleStatus)
		categories.DELETE("/:id", c.CategoryHandler.DeleteCategory)
	}

	products := admin.Group("/products")
	{
		products.POST("", c.ProductHandler.CreateProduct)
		products.PUT("/:id", c.ProductHandler.UpdateProduct)
		products.PATCH("/:id/status", c.ProductHandler.ToggleStatus)
		products.PATCH("/:id/offer", c.ProductHandler.ToggleOffer)
		products.POST("/:id/images", c.ProductHandler.UploadImage)
	}

	coupons := admin.Group("/coupons")
	{
		coupons.POST("", c.CouponHandler.Create)
		coupons.GET("", c.CouponHandler.List)
		coupons.PATCH("/:id/status", c.CouponHandler.ToggleVisibility)
		coupons.DELETE("/:id", c.CouponHandler.Delete)
	}

	// Orders
	admin.GET("/orders", c.OrderHandler.ListOrders)
	admin.GET("/orders/:orderId", c.OrderHandler.GetOrder)
	admin.PUT("/update-order-status/:orderId", c.OrderHandler.AdminUpdateStatus)
	admin.PUT("/cancel-order/:orderId", c.OrderHandler.AdminCancelOrder)
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			status = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
			status = "degraded"
		}

		code := http.StatusOK
		if status != "ok" {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	}
}
