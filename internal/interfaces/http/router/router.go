// Package router wires HTTP routes to their handlers.
package router

import (
	"net/http"

	"github.com/ecomercado/backend/internal/infrastructure/auth"
	"github.com/ecomercado/backend/internal/interfaces/http/handler"
	"github.com/ecomercado/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers collects every HTTP handler the router mounts
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Cart         *handler.CartHandler
	Wishlist     *handler.WishlistHandler
	Order        *handler.OrderHandler
	Donation     *handler.DonationHandler
	Request      *handler.RequestHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	Recommend    *handler.RecommendHandler
	Upload       *handler.UploadHandler
}

// Setup registers all routes under /api/v1. Auth endpoints and health are
// public; everything else sits behind JWT authentication.
func Setup(engine *gin.Engine, jwtService *auth.JWTService, h Handlers) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		me := protected.Group("/me")
		{
			me.GET("", h.Auth.Profile)
			me.PUT("", h.Auth.UpdateProfile)
			me.PUT("/password", h.Auth.ChangePassword)
			me.POST("/seller", h.Auth.RegisterAsSeller)
			me.PUT("/push-subscription", h.Auth.SetPushSubscription)
		}

		products := protected.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", h.Product.Create)
			products.GET("/mine", h.Product.ListMine)
			products.GET("/:id", h.Product.GetByID)
			products.PUT("/:id", h.Product.Update)
			products.PUT("/:id/disabled", h.Product.SetDisabled)
			products.DELETE("/:id", h.Product.Delete)
			products.POST("/:id/ratings", h.Product.Rate)
			products.GET("/:id/ratings", h.Product.Ratings)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", h.Category.List)
			categories.POST("", h.Category.Create)
			categories.PUT("/:id", h.Category.Rename)
			categories.DELETE("/:id", h.Category.Delete)
		}

		cart := protected.Group("/cart")
		{
			cart.GET("", h.Cart.List)
			cart.POST("", h.Cart.Add)
			cart.PUT("/:productId", h.Cart.UpdateQuantity)
			cart.DELETE("/:productId", h.Cart.Remove)
			cart.DELETE("", h.Cart.Clear)
		}

		wishlist := protected.Group("/wishlist")
		{
			wishlist.GET("", h.Wishlist.List)
			wishlist.POST("", h.Wishlist.Add)
			wishlist.DELETE("/:productId", h.Wishlist.Remove)
		}

		orders := protected.Group("/orders")
		{
			orders.POST("", h.Order.Place)
			orders.GET("/purchases", h.Order.ListPurchases)
			orders.GET("/sales", h.Order.ListSales)
			orders.GET("/sales/summary", h.Order.Summary)
			orders.GET("/:id", h.Order.GetByID)
			orders.POST("/:id/approve", h.Order.Approve)
			orders.POST("/:id/decline", h.Order.Decline)
			orders.POST("/:id/cancel", h.Order.Cancel)
			orders.POST("/:id/ship", h.Order.Ship)
			orders.POST("/:id/confirm-receipt", h.Order.ConfirmReceipt)
		}

		donations := protected.Group("/donations")
		{
			donations.GET("", h.Donation.List)
			donations.POST("", h.Donation.Create)
			donations.GET("/mine", h.Donation.ListMine)
			donations.GET("/:id", h.Donation.GetByID)
			donations.PUT("/:id/disabled", h.Donation.SetDisabled)
			donations.DELETE("/:id", h.Donation.Delete)
		}

		requests := protected.Group("/donation-requests")
		{
			requests.POST("", h.Request.Place)
			requests.GET("/mine", h.Request.ListMine)
			requests.GET("/incoming", h.Request.ListIncoming)
			requests.GET("/:id", h.Request.GetByID)
			requests.POST("/:id/approve", h.Request.Approve)
			requests.POST("/:id/decline", h.Request.Decline)
			requests.POST("/:id/ship", h.Request.Ship)
			requests.POST("/:id/complete", h.Request.Complete)
		}

		chats := protected.Group("/chats")
		{
			chats.GET("", h.Chat.List)
			chats.POST("", h.Chat.Open)
			chats.GET("/:id/messages", h.Chat.History)
			chats.POST("/:id/messages", h.Chat.Send)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
			notifications.PUT("/read-all", h.Notification.MarkAllRead)
		}

		feed := protected.Group("/feed")
		{
			feed.GET("/products", h.Recommend.ProductFeed)
			feed.GET("/donations", h.Recommend.DonationFeed)
		}

		protected.POST("/uploads/:kind", h.Upload.Upload)
	}
}
