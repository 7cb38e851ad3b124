package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"decision-framework-be/internal/config"
	"decision-framework-be/internal/controller"
	"decision-framework-be/internal/pkg/logger"
	"decision-framework-be/internal/repository/memory"
	"decision-framework-be/internal/service"
	"decision-framework-be/pkg/catalog"
	"decision-framework-be/pkg/embedding"
	"decision-framework-be/pkg/embedding/factory"
	"decision-framework-be/pkg/matching"
	"decision-framework-be/pkg/report"
	"decision-framework-be/pkg/sop"
)

type Container struct {
	// Controllers
	DecisionController controller.IDecisionController
	CatalogController  controller.ICatalogController

	// Background services (exposed for main.go to run)
	WarmupService service.IWarmupService

	// Core facades (exposed for the CLI)
	DecisionService service.IDecisionService
	ReportGenerator *report.Generator
	Logger          logger.ILogger
}

func NewContainer(kb *catalog.KnowledgeBase, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding chain (ranked providers behind one cache)
	providers, err := factory.NewProviders(cfg.Embedding.Providers, factory.ProviderSettings{
		GeminiApiKey:  cfg.Keys.GoogleGemini,
		JinaApiKey:    cfg.Keys.Jina,
		OllamaBaseURL: cfg.Embedding.OllamaBaseURL,
		OllamaModel:   cfg.Embedding.OllamaModel,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize embedding providers: %v", err)
	}
	log.Printf("[INFO] Using embedding providers (ranked): %v", cfg.Embedding.Providers)

	vectorCache := embedding.NewVectorCache()
	adapter := embedding.NewChainAdapter(providers, vectorCache, cfg.Embedding.Timeout, sysLogger)

	// 4. Matching core
	normalizer := matching.NewNormalizer(cfg.Matching.StopWords)
	matchingConfig := matching.Config{
		SimilarityThreshold: cfg.Matching.SimilarityThreshold,
		LowConfidenceTopN:   cfg.Matching.LowConfidenceTopN,
		MaxResults:          cfg.Matching.MaxResults,
	}
	pipeline := matching.NewPipeline(
		matching.NewSemanticStrategy(adapter, matchingConfig),
		matching.NewKeywordStrategy(normalizer),
		matchingConfig,
		sysLogger,
	)

	sopEvaluator := sop.NewEvaluator(normalizer, sop.Config{
		OverrideThreshold: cfg.Matching.SopOverrideThreshold,
	}, sysLogger)

	// 5. Storage & reporting
	historyRepo := memory.NewHistoryRepository(cfg.App.HistorySize)
	reportGenerator := report.NewGenerator(kb)

	// 6. Services
	decisionService := service.NewDecisionService(kb, pipeline, sopEvaluator, historyRepo, reportGenerator, sysLogger)
	warmupService := service.NewWarmupService(pubSub, cfg.App.WarmupTopic, kb, adapter, sysLogger)

	// 7. Controllers
	return &Container{
		DecisionController: controller.NewDecisionController(decisionService),
		CatalogController:  controller.NewCatalogController(kb),
		WarmupService:      warmupService,
		DecisionService:    decisionService,
		ReportGenerator:    reportGenerator,
		Logger:             sysLogger,
	}
}
