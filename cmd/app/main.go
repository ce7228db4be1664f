package main

import (
	"os"
	"os/signal"
	"syscall"

	"WellCommand/internal/config"
	"WellCommand/pkg/log"
	"WellCommand/pkg/redis"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.NewLogger().Fatalf("Error loading .env file: %v", err)
	}
	logger := log.NewLogger()

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()

	options := []config.ServerOption{
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithMiddleware(),
		config.WithSessionConfig(),
		config.WithCommandSource(),
		config.WithUtils(),
	}
	if os.Getenv("REDIS_ADDRESS") != "" {
		options = append(options, config.WithRedisServer(redis.New()))
	}

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	<-sigChan
	logger.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
