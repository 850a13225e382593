package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Anuradha654321/faculty-leave-system/internal/config"
	"github.com/Anuradha654321/faculty-leave-system/internal/middleware"
	"github.com/Anuradha654321/faculty-leave-system/internal/shared/connection"
)

// BuildApp connects the infrastructure and registers every module's routes
// on the router.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID())

	return registerModules(router, cfg, sqlDB, gormDB, redisClient)
}
