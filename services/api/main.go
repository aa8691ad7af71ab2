package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/apihelpers"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/apihelpers/middlewares"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/identity"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/janitor"
	"github.com/P2B-ARIF/facebook-info-api-backend/services/api/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length", "Api-Key"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if conf.RateLimitConfig.Use {
		redisCli := redis.NewClient(&redis.Options{
			Addr:     conf.RateLimitConfig.RedisAddr,
			Password: conf.RateLimitConfig.RedisPassword,
		})
		router.Use(middlewares.RateLimit(redisCli, conf.RateLimitConfig.MaxPerMinute, time.Minute))
	}

	if conf.UseIPAllowlist {
		router.Use(middlewares.IPAllowlist(allowlistDBService))
	}

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	root := router.Group("")

	apiHandlers := apihandlers.NewHTTPHandler(
		conf.UserManagementConfig.UserJWTConfig.SignKey,
		allowlistDBService,
		userDBService,
		submissionDBService,
		identity.TwoFAClient{Client: conf.IdentityConfig.TwoFAService.toClientConfig()},
		identity.InboxClient{Client: conf.IdentityConfig.InboxService.toClientConfig()},
	)
	apiHandlers.AddAuthAPI(root)
	apiHandlers.AddIdentityAPI(root)
	apiHandlers.AddSubmissionAPI(root)
	apiHandlers.AddReportAPI(root)

	managementRoot := router.Group("")
	managementRoot.Use(middlewares.HasValidAPIKey(conf.ManagementAPIKeys))
	apiHandlers.AddUserManagementAPI(managementRoot)
	apiHandlers.AddAllowlistAPI(managementRoot)

	// Start background cleanup
	expiryJanitor := janitor.NewJanitor(
		janitorInterval,
		janitor.Sweep{
			Name: "expired allowlist entries",
			Run: func(ctx context.Context) error {
				count, err := allowlistDBService.DeleteExpiredEntries(time.Now().Add(-maxEntryAge))
				if err != nil {
					return err
				}
				if count > 0 {
					slog.Info("removed expired allowlist entries", slog.Int64("count", count))
				}
				return nil
			},
		},
		janitor.Sweep{
			Name: "expired memberships",
			Run: func(ctx context.Context) error {
				count, err := userDBService.ExpireMemberships(time.Now().Add(-maxEntryAge))
				if err != nil {
					return err
				}
				if count > 0 {
					slog.Info("expired memberships", slog.Int64("count", count))
				}
				return nil
			},
		},
	)
	go expiryJanitor.Start(context.Background())

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "api-routes.txt")
	}

	// Start the server
	slog.Info("Starting API on port " + conf.GinConfig.Port)
	err := router.Run(":" + conf.GinConfig.Port)
	if err != nil {
		slog.Error("Exited API", slog.String("error", err.Error()))
		return
	}
}
