// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/config"
	"github.com/jenny07007/deserhub-backend/internal/handlers"
	"github.com/jenny07007/deserhub-backend/internal/middleware"
	"github.com/jenny07007/deserhub-backend/internal/services"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	ledgerService := services.NewLedgerService(db)
	notificationService := services.NewNotificationService(db)
	mintService := services.NewMintService(db)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg, ledgerService)
	platformService := services.NewPlatformService(db, &cfg.Platform, ledgerService, notificationService)
	paperService := services.NewPaperService(db, ledgerService, notificationService)
	passService := services.NewPassService(db, ledgerService, notificationService)
	credentialService := services.NewCredentialService(db, mintService, notificationService)
	paymentService := services.NewPaymentService(db, cfg, ledgerService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	platformHandler := handlers.NewPlatformHandler(platformService)
	paperHandler := handlers.NewPaperHandler(paperService, passService, storageService)
	passHandler := handlers.NewPassHandler(passService)
	credentialHandler := handlers.NewCredentialHandler(credentialService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Platform routes
		platforms := v1.Group("/platforms")
		{
			platforms.GET("/:id", middleware.OptionalAuth(), platformHandler.GetPlatform)
			platforms.GET("/:id/stats", platformHandler.GetStats)

			protected := platforms.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", middleware.OperatorRequired(), platformHandler.InitializePlatform)
				protected.POST("/:id/withdraw", middleware.OperatorRequired(), platformHandler.Withdraw)
				protected.POST("/:id/papers", paperHandler.CreatePaper)
			}
		}

		// Paper routes
		papers := v1.Group("/papers")
		{
			papers.GET("", middleware.OptionalAuth(), paperHandler.GetPapers)
			papers.GET("/:id", middleware.OptionalAuth(), paperHandler.GetPaper)

			protected := papers.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/upload", middleware.UploadRateLimit(), paperHandler.UploadPaper)
				protected.GET("/:id/download", paperHandler.DownloadPaper)
			}
		}

		// Access pass routes
		passes := v1.Group("/passes")
		passes.Use(middleware.AuthRequired())
		{
			passes.POST("", middleware.PurchaseRateLimit(), passHandler.PayPass)
			passes.GET("", passHandler.GetMyPasses)
			passes.GET("/:id", passHandler.GetPass)
		}

		// Credential routes
		credentials := v1.Group("/credentials")
		credentials.Use(middleware.AuthRequired())
		{
			credentials.POST("", credentialHandler.MintCredential)
			credentials.GET("", credentialHandler.GetMyCredentials)
			credentials.GET("/:id", credentialHandler.GetCredential)
		}

		// Payment routes
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/deposits", paymentHandler.CreateDeposit)
			payments.POST("/deposits/confirm", paymentHandler.ConfirmDeposit)
			payments.GET("/deposits", paymentHandler.GetDeposits)
			payments.GET("/balance", paymentHandler.GetBalance)
		}
	}

	return r
}
