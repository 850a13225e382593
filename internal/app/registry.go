package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Anuradha654321/faculty-leave-system/internal/auth"
	"github.com/Anuradha654321/faculty-leave-system/internal/catalog"
	"github.com/Anuradha654321/faculty-leave-system/internal/config"
	"github.com/Anuradha654321/faculty-leave-system/internal/directory"
	"github.com/Anuradha654321/faculty-leave-system/internal/leave"
	"github.com/Anuradha654321/faculty-leave-system/internal/messaging/kafka"
	"github.com/Anuradha654321/faculty-leave-system/internal/middleware"
	"github.com/Anuradha654321/faculty-leave-system/internal/notification"
	"github.com/Anuradha654321/faculty-leave-system/internal/rbac"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	catalogRepo := catalog.NewRepository(gormDB)
	directoryRepo := directory.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	dispatcher := notification.NewDispatcher(notificationRepo, outboxRepo)
	authService := auth.NewService(directoryRepo, cfg.JWTSecret, cfg.JWTTTL)
	catalogService := catalog.NewService(catalogRepo, rdb)
	directoryService := directory.NewService(directoryRepo)
	leaveService := leave.NewService(db, leaveRepo, catalogRepo, directoryRepo, dispatcher)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	directoryHandler := directory.NewHandler(directoryService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(20, 40))
	{
		auth.RegisterRoutes(api, authHandler)
		catalog.RegisterRoutes(api, catalogHandler, rbacService)
		directory.RegisterRoutes(api, directoryHandler)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
	}

	return nil
}
