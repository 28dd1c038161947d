package api

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/team33/casino-gateway/internal/api/handlers"
	"github.com/team33/casino-gateway/internal/auth"
	"github.com/team33/casino-gateway/internal/config"
	"github.com/team33/casino-gateway/internal/games"
	"github.com/team33/casino-gateway/internal/middleware"
	"github.com/team33/casino-gateway/internal/promo"
	"github.com/team33/casino-gateway/internal/wallet"
	"github.com/team33/casino-gateway/internal/ws"
)

// Services bundles everything the route tree needs
type Services struct {
	Auth   *auth.Service
	Games  *games.Service
	Promo  *promo.Service
	Wallet *wallet.Service
	Hub    *ws.Hub
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, svcs Services, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestID())
	router.Use(middleware.Session(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Auth endpoints
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", handlers.Login(svcs.Auth))
			authGroup.POST("/signup", handlers.Signup(svcs.Auth))
			authGroup.POST("/logout", handlers.Logout(svcs.Auth))
			authGroup.GET("/me", handlers.Me(svcs.Auth))
			authGroup.POST("/demo", handlers.RegisterDemo(svcs.Auth))
		}

		// Game catalog
		gamesGroup := v1.Group("/games")
		{
			gamesGroup.GET("", handlers.ListGames(svcs.Games))
			gamesGroup.GET("/search", handlers.SearchGames(svcs.Games))
			gamesGroup.GET("/providers", handlers.ListProviders(svcs.Games))
			gamesGroup.POST("/launch", handlers.LaunchGame(svcs.Games))
		}

		// Promotions
		promos := v1.Group("/promotions")
		{
			promos.GET("", handlers.ListPromotions(svcs.Promo))
			promos.GET("/:id", handlers.GetPromotion(svcs.Promo))
			promos.POST("/:id/claim", handlers.ClaimPromotion(svcs.Promo))
		}

		// Wallet
		walletGroup := v1.Group("/wallet")
		{
			walletGroup.GET("/balance", handlers.GetBalance(svcs.Wallet))
			walletGroup.POST("/deposit", handlers.Deposit(svcs.Wallet))
			walletGroup.POST("/withdraw", handlers.Withdraw(svcs.Wallet))
			walletGroup.GET("/transactions", handlers.ListTransactions(svcs.Wallet))
			walletGroup.GET("/transactions/pending", handlers.ListPendingTransactions(svcs.Wallet))
			walletGroup.GET("/checkin", handlers.CheckInStatus(svcs.Wallet))
			walletGroup.POST("/checkin", handlers.CheckIn(svcs.Wallet))
			walletGroup.GET("/spin", handlers.SpinStatus(svcs.Wallet))
			walletGroup.POST("/spin", handlers.SpinWheel(svcs.Wallet))
			walletGroup.GET("/:accountId/ws", ws.HandleWalletSocket(svcs.Hub, cfg))
		}
	}
}
