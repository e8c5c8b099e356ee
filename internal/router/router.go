// internal/router/router.go
package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkrights/ledger-backend/internal/auth"
	"github.com/inkrights/ledger-backend/internal/config"
	"github.com/inkrights/ledger-backend/internal/handlers"
	"github.com/inkrights/ledger-backend/internal/middleware"
	"github.com/inkrights/ledger-backend/internal/payout"
	"github.com/inkrights/ledger-backend/internal/services"
	"github.com/inkrights/ledger-backend/internal/store"
	"github.com/inkrights/ledger-backend/internal/utils"
)

// Initialize builds the service graph over the supplied stores and wires
// the HTTP surface. The content registry, rights registry, catalog and
// revenue splitter are constructed as separate components talking
// through narrow interfaces, mirroring how they would be deployed as
// separate trusted parties.
func Initialize(stores store.Stores, bank payout.Transferrer, cfg *config.Config) (*gin.Engine, error) {
	rightsService, err := services.NewRightsService(stores.Rights, stores.Settings, stores.Events, stores.Runner)
	if err != nil {
		return nil, err
	}
	revenueService, err := services.NewRevenueService(
		stores.Revenue, stores.Settings, stores.Events, bank, stores.Runner,
		cfg.Ledger.AdminAddress, cfg.Ledger.PlatformWallet, cfg.Ledger.InitialFeePercent,
	)
	if err != nil {
		return nil, err
	}
	catalogService := services.NewCatalogService(stores.Catalog, stores.Events, revenueService, bank, stores.Runner)
	contentService := services.NewContentService(stores.Content, stores.Events, rightsService, stores.Runner, cfg.Ledger.ContentRegistryAddress)
	adminService := services.NewAdminService(stores.Events, cfg.Ledger.TimelockDelay)

	// Bootstrap wiring runs under the deployer's admin capability. The
	// rights registry learns which collaborator identity may assign
	// initial ownership, and the catalog learns where to resolve owners.
	bootstrap := auth.NewAdminCapability(cfg.Ledger.AdminAddress)
	ctx := context.Background()
	if err := rightsService.SetContentRegistryAddress(ctx, bootstrap, cfg.Ledger.ContentRegistryAddress); err != nil {
		return nil, err
	}
	if err := catalogService.SetRightsRegistry(ctx, bootstrap, rightsService); err != nil {
		return nil, err
	}

	// Initialize handlers
	contentHandler := handlers.NewContentHandler(contentService)
	rightsHandler := handlers.NewRightsHandler(rightsService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	revenueHandler := handlers.NewRevenueHandler(revenueService)
	adminHandler := handlers.NewAdminHandler(adminService, rightsService, catalogService, revenueService)
	eventsHandler := handlers.NewEventsHandler(stores.Events)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	v1 := r.Group("/v1")
	{
		contents := v1.Group("/contents")
		{
			contents.GET("/:id", contentHandler.GetContent)
			contents.GET("", contentHandler.ListContents)
			contents.POST("", middleware.AuthRequired(), contentHandler.CreateContent)
		}

		rights := v1.Group("/rights")
		{
			rights.GET("/operators", rightsHandler.GetOperator)
			rights.GET("/:id/owner", rightsHandler.GetOwner)
			rights.GET("/:id/approved", rightsHandler.GetApproved)

			protected := rights.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/operators", rightsHandler.SetOperator)
				protected.POST("/:id/approve", rightsHandler.Approve)
				protected.POST("/:id/transfer", rightsHandler.Transfer)
			}
		}

		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.ListProducts)
			products.GET("/:id", catalogHandler.GetProduct)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", catalogHandler.RegisterProduct)
				protected.PATCH("/:id/active", catalogHandler.SetActive)
				protected.POST("/:id/purchase", middleware.PurchaseRateLimit(), catalogHandler.Purchase)
			}
		}

		revenue := v1.Group("/revenue")
		{
			revenue.GET("/config", revenueHandler.GetConfig)

			protected := revenue.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/balance", revenueHandler.GetBalance)
				protected.POST("/withdrawals/creator", revenueHandler.WithdrawCreator)
				protected.POST("/withdrawals/platform", revenueHandler.WithdrawPlatform)
			}
		}

		events := v1.Group("/events")
		{
			events.GET("", eventsHandler.ListEvents)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(cfg))
		{
			admin.PUT("/revenue/fee", adminHandler.SetFeePercentage)
			admin.PUT("/revenue/platform-wallet", adminHandler.SetPlatformWallet)
			admin.PUT("/rights/content-registry", adminHandler.SetContentRegistryAddress)
			admin.POST("/revenue/emergency-withdrawal", adminHandler.EmergencyWithdraw)
			admin.GET("/commands", adminHandler.ListCommands)
			admin.POST("/commands/:id/execute", adminHandler.ExecuteCommand)
			admin.POST("/commands/:id/cancel", adminHandler.CancelCommand)
		}
	}

	return r, nil
}
