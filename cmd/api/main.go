package main

import (
	"retroboard/internal/config"
	"retroboard/internal/db"
	"retroboard/internal/handler"
	"retroboard/internal/httpserver"
	"retroboard/internal/jobs"
	"retroboard/internal/llm"
	"retroboard/internal/metrics"
	"retroboard/internal/mq"
	redisclient "retroboard/internal/redis"
	"retroboard/internal/repository"
	"retroboard/internal/service"
	"retroboard/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewClient(cfg.Redis)
	defer rdb.Close()

	// Init RabbitMQ producer
	producer, err := mq.NewProducer(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init producer", zap.Error(err))
	}
	defer producer.Close()

	// Init repositories
	projectRepo := repository.NewProjectRepository(dbConn)
	hoursRepo := repository.NewProfileHoursRepository(dbConn)
	scopeRepo := repository.NewScopeItemRepository(dbConn)
	costRepo := repository.NewExternalCostRepository(dbConn)
	crRepo := repository.NewChangeRequestRepository(dbConn)
	estimateRepo := repository.NewEstimateRepository(dbConn)
	pmRepo := repository.NewPMRepository(dbConn)
	jobRepo := repository.NewJobRepository(dbConn)

	// Init services
	engine := metrics.NewEngine(cfg.Costing.InternalHourlyCost, cfg.Costing.TargetMarginMin, cfg.Costing.TargetMarginMax)
	llmClient := llm.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, log)
	queue := jobs.NewMQQueue(jobRepo, producer, log)

	projectService := service.NewProjectService(projectRepo, hoursRepo, scopeRepo, costRepo, crRepo, engine, log)
	analyticsService := service.NewAnalyticsService(projectService, rdb, log)
	assistantService := service.NewAssistantService(llmClient, cfg.OpenAI.ChatModel)
	estimateService := service.NewEstimateService(llmClient, estimateRepo, cfg.OpenAI.ChatModel, log)
	offerService := service.NewOfferService(llmClient, cfg.OpenAI.ChatModel, log)
	pmService := service.NewPMService(queue, pmRepo)

	// Init handlers
	authHandler := handler.NewAuthHandler(cfg.Auth.EditPasswordHash, cfg.Auth.JWTSecret, log)
	projectHandler := handler.NewProjectHandler(projectService, analyticsService, log)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, log)
	assistantHandler := handler.NewAssistantHandler(assistantService, log)
	estimateHandler := handler.NewEstimateHandler(estimateService, log)
	offerHandler := handler.NewOfferHandler(offerService, log)
	pmHandler := handler.NewPMHandler(pmService, log)

	// Router
	router := httpserver.NewRouter(
		authHandler,
		projectHandler,
		analyticsHandler,
		assistantHandler,
		estimateHandler,
		offerHandler,
		pmHandler,
		dbConn,
		cfg.Auth.JWTSecret,
	)

	log.Info("starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
