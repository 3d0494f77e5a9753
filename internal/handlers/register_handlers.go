package handlers

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/middleware"
	"github.com/SscSPs/club_ledger_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	RegisterValidators()

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.ActorHeader},
			ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	syncLimiter, err := middleware.NewMemoryLimiter(cfg.SyncRateLimit)
	if err != nil {
		return fmt.Errorf("failed to configure sync rate limit: %w", err)
	}

	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(syncLimiter))
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	syncLimit gin.HandlerFunc,
) {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	v1 := r.Group("/api/v1", middleware.RequireActor())

	registerClubRoutes(v1, services.Club)
	registerSyncRoutes(v1, services.Sync, loc, syncLimit)
	registerReconciliationRoutes(v1, services.Reconciliation, loc)
	registerPaymentRequestRoutes(v1, services.PaymentRequest, services.Settlement)
	registerSettlementRoutes(v1, services.Settlement)
	registerLedgerRoutes(v1, services.Ledger, loc)
}
