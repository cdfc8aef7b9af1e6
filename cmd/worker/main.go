package main

import (
	"retroboard/internal/config"
	"retroboard/internal/db"
	"retroboard/internal/jobs"
	"retroboard/internal/llm"
	"retroboard/internal/mq"
	"retroboard/internal/repository"
	"retroboard/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("starting worker service...")

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	log.Info("database connection established")

	jobRepo := repository.NewJobRepository(dbConn)
	llmClient := llm.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, log)
	worker := jobs.NewWorker(jobRepo, llmClient, cfg.OpenAI.TaskModel, log)

	log.Info("initializing generate consumer", zap.String("routing_key", mq.RoutingKeyPMGenerate))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, mq.RoutingKeyPMGenerate)
	if err != nil {
		log.Fatal("failed to init consumer", zap.Error(err))
	}
	defer consumer.Close()

	consumer.SetHandler(worker.HandleGenerate)

	log.Info("starting generate consumer")
	if err := consumer.StartConsuming(); err != nil {
		log.Fatal("consumer failed", zap.Error(err))
	}
}
