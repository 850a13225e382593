package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Anuradha654321/faculty-leave-system/internal/app"
	"github.com/Anuradha654321/faculty-leave-system/internal/config"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	if err := app.RunConsumer(cfg); err != nil {
		logger.Fatal("consumer failed", zap.Error(err))
	}
}
