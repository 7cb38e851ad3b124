package main

import (
	"context"
	"log"

	"decision-framework-be/internal/bootstrap"
	"decision-framework-be/internal/config"
	"decision-framework-be/internal/server"
	"decision-framework-be/internal/tracer"
	"decision-framework-be/pkg/catalog"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Panicf("Invalid configuration: %v", err)
	}

	// 2. Load Catalog
	kb, err := catalog.LoadDir(cfg.Catalog.Dir)
	if err != nil {
		log.Panicf("Unable to load catalog: %v", err)
	}
	log.Printf("[INFO] Catalog loaded: %d principles, %d sops, %d values",
		len(kb.Principles()), len(kb.Sops()), len(kb.Values()))

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(kb, cfg)

	// 4. Start Background Warmup (precompute principle embeddings)
	go func() {
		ctx := context.Background()
		if err := container.WarmupService.Consume(ctx); err != nil {
			log.Printf("Background Warmup Error: %v", err)
			return
		}
		if err := container.WarmupService.PublishAll(); err != nil {
			log.Printf("Background Warmup Publish Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
