package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	sentrygin "github.com/getsentry/sentry-go/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/schoolbooks/docs"
	"github.com/d60-Lab/schoolbooks/internal/api/handler"
	"github.com/d60-Lab/schoolbooks/internal/api/middleware"
	"github.com/d60-Lab/schoolbooks/internal/auth"
	"github.com/d60-Lab/schoolbooks/internal/config"
)

// NewRouter 装配路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler, tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware("schoolbooks"))
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 公开
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/sellers/:id/reviews", h.ListSellerReviews)
		v1.GET("/categories", h.ListCategories)
		v1.GET("/cities", h.ListCities)
		v1.GET("/states", h.ListStates)
		v1.GET("/tiers", h.ListTiers)

		// 需要登录
		authed := v1.Group("")
		authed.Use(middleware.JWT(tokens))
		{
			authed.GET("/users/me", h.Me)
			authed.PUT("/users/me", h.UpdateMe)

			authed.POST("/products", h.CreateProduct)
			authed.PUT("/products/:id", h.UpdateProduct)
			authed.DELETE("/products/:id", h.DeleteProduct)

			authed.GET("/carts", h.ListCart)
			authed.POST("/carts", h.AddToCart)
			authed.DELETE("/carts/:productID", h.RemoveFromCart)

			authed.GET("/wishlist", h.ListWishlist)
			authed.POST("/wishlist", h.AddToWishlist)
			authed.DELETE("/wishlist/:productID", h.RemoveFromWishlist)

			authed.POST("/orders", h.CreateOrder)
			authed.GET("/orders", h.ListOrders)
			authed.GET("/orders/:id", h.GetOrder)
			authed.POST("/orders/:id/accept", h.AcceptOrder)
			authed.POST("/orders/:id/reject", h.RejectOrder)
			authed.POST("/orders/:id/ship", h.ShipOrder)
			authed.POST("/orders/:id/delivered", h.DeliverOrder)
			authed.POST("/orders/:id/complete", h.CompleteOrder)
			authed.POST("/orders/:id/cancel", h.CancelOrder)

			authed.POST("/orders/:id/payments", h.CreatePayment)
			authed.GET("/orders/:id/payments", h.GetOrderPayment)
			authed.POST("/payments/:id/complete", h.CompletePayment)
			authed.POST("/payments/:id/fail", h.FailPayment)

			authed.GET("/notifications", h.ListNotifications)
			authed.POST("/notifications/:id/read", h.ReadNotification)
			authed.POST("/notifications/read-all", h.ReadAllNotifications)
			authed.GET("/ws", h.NotificationSocket)

			authed.POST("/reviews", h.CreateReview)

			authed.GET("/cards", h.ListCards)
			authed.POST("/cards", h.CreateCard)
			authed.DELETE("/cards/:id", h.DeleteCard)

			authed.GET("/saved-searches", h.ListSavedSearches)
			authed.POST("/saved-searches", h.CreateSavedSearch)
			authed.PUT("/saved-searches/:id", h.UpdateSavedSearch)
			authed.DELETE("/saved-searches/:id", h.DeleteSavedSearch)
		}
	}

	return r
}
