package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/podhaven/podhaven-backend/internal/handler"
	"github.com/podhaven/podhaven-backend/internal/middleware"
	"github.com/podhaven/podhaven-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	podcastHandler *handler.PodcastHandler,
	episodeHandler *handler.EpisodeHandler,
	mediaRefHandler *handler.MediaRefHandler,
	artworkHandler *handler.ArtworkHandler,
	historyHandler *handler.HistoryHandler,
	paymentHandler *handler.PaymentHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication (no auth required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Current user profile
	users := api.Group("/users", middleware.JWTAuth(jwtManager))
	users.GET("/me", userHandler.GetMe)
	users.PATCH("/me", userHandler.UpdateMe)
	users.DELETE("/me", userHandler.DeleteMe)

	// Podcast catalog (reads public, writes admin)
	podcasts := api.Group("/podcasts")
	podcasts.GET("", podcastHandler.List)
	podcasts.GET("/:id", podcastHandler.Get)
	podcasts.POST("", middleware.JWTAuth(jwtManager), middleware.RequireAdmin(), podcastHandler.Create)
	podcasts.PATCH("/:id", middleware.JWTAuth(jwtManager), middleware.RequireAdmin(), podcastHandler.Update)
	podcasts.DELETE("/:id", middleware.JWTAuth(jwtManager), middleware.RequireAdmin(), podcastHandler.Delete)
	podcasts.POST("/:id/artwork", middleware.JWTAuth(jwtManager), middleware.RequireAdmin(), artworkHandler.Upload)

	// Episodes (reads public, writes admin)
	episodes := api.Group("/episodes")
	episodes.GET("", episodeHandler.List)
	episodes.GET("/:id", episodeHandler.Get)
	episodes.GET("/:id/media-refs", middleware.OptionalJWTAuth(jwtManager), mediaRefHandler.ListByEpisode)
	episodes.POST("", middleware.JWTAuth(jwtManager), middleware.RequireAdmin(), episodeHandler.Create)
	episodes.PATCH("/:id", middleware.JWTAuth(jwtManager), middleware.RequireAdmin(), episodeHandler.Update)
	episodes.DELETE("/:id", middleware.JWTAuth(jwtManager), middleware.RequireAdmin(), episodeHandler.Delete)

	// Clips
	mediaRefs := api.Group("/media-refs")
	mediaRefs.GET("/:id", middleware.OptionalJWTAuth(jwtManager), mediaRefHandler.Get)
	mediaRefs.POST("", middleware.JWTAuth(jwtManager), mediaRefHandler.Create)
	mediaRefs.PATCH("/:id", middleware.JWTAuth(jwtManager), mediaRefHandler.Update)
	mediaRefs.DELETE("/:id", middleware.JWTAuth(jwtManager), mediaRefHandler.Delete)

	// Chapters file for podcast players (public clips by episode media URL)
	api.GET("/clips", mediaRefHandler.Chapters)

	// Playback history (always owner-scoped)
	history := api.Group("/user-history-item", middleware.JWTAuth(jwtManager))
	history.GET("", historyHandler.List)
	history.GET("/metadata", historyHandler.ListMetadata)
	history.PATCH("", historyHandler.AddOrUpdate)
	history.DELETE("", historyHandler.Remove)
	history.DELETE("/episode/:episodeId", historyHandler.RemoveByEpisode)
	history.DELETE("/mediaRef/:mediaRefId", historyHandler.RemoveByMediaRef)
	history.DELETE("/remove-all", historyHandler.RemoveAll)

	// Payments
	bitpay := api.Group("/bitpay")
	bitpay.POST("/invoice", middleware.JWTAuth(jwtManager), paymentHandler.CreateBitPayInvoice)
	bitpay.GET("/invoice/:id", middleware.JWTAuth(jwtManager), paymentHandler.GetOrder)
	bitpay.POST("/notification", paymentHandler.BitPayNotification)

	paypal := api.Group("/paypal")
	paypal.POST("/order", middleware.JWTAuth(jwtManager), paymentHandler.CreatePayPalOrder)
	paypal.GET("/order/:id", middleware.JWTAuth(jwtManager), paymentHandler.GetOrder)
	paypal.POST("/notification", paymentHandler.PayPalNotification)

	api.GET("/payments/orders", middleware.JWTAuth(jwtManager), paymentHandler.ListOrders)
}
