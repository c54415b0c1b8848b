package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/drinkslane/backend/config"
	httpDelivery "github.com/drinkslane/backend/internal/delivery/http"
	"github.com/drinkslane/backend/internal/domain"
	"github.com/drinkslane/backend/internal/infrastructure/catalog"
	"github.com/drinkslane/backend/internal/infrastructure/imagegen"
	"github.com/drinkslane/backend/internal/infrastructure/search"
	"github.com/drinkslane/backend/internal/infrastructure/store"
	"github.com/drinkslane/backend/internal/scheduler"
	"github.com/drinkslane/backend/internal/usecase"
)

func main() {
	// .env is optional; env vars can be set by other means.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting DrinksLane Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	backendClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Bucket)
	if cfg.Server.Environment == "development" {
		backendClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}

	slot := buildSlotStore(cfg)
	catalogCache := usecase.NewCatalogCache(slot)

	var generator domain.ImageGenerator
	if cfg.Images.GeneratorURL != "" {
		generator = imagegen.NewClient(cfg.Images.GeneratorURL)
		log.Printf("Image generator configured: %s", cfg.Images.GeneratorURL)
	} else {
		log.Printf("Image generator not configured; rejects fall back to category icons")
	}

	catalogService := usecase.NewCatalogService(
		backendClient,
		catalogCache,
		generator,
		nil,
		usecase.CatalogServiceConfig{
			EnableDebugLogging: cfg.Images.Debug,
		},
	)

	var searcher domain.TitleSearcher = backendClient
	var indexer scheduler.ProductIndexer
	if cfg.Suggest.Backend == "meili" {
		meiliSearcher := search.NewTitleSearcher(cfg.Suggest.MeiliURL, cfg.Suggest.MeiliAPIKey, cfg.Suggest.MeiliIndex)
		searcher = meiliSearcher
		indexer = meiliSearcher
		log.Printf("Suggestion backend: meilisearch (%s)", cfg.Suggest.MeiliURL)
	} else {
		log.Printf("Suggestion backend: catalog title search")
	}
	suggestionService := usecase.NewSuggestionService(searcher, cfg.Suggest.Limit)

	if cfg.Refresh.Enabled {
		refreshCron, err := scheduler.StartRefresh(catalogService, indexer, cfg.Refresh.Schedule)
		if err != nil {
			log.Fatalf("Failed to schedule catalog refresh: %v", err)
		}
		defer refreshCron.Stop()
	}

	handler := httpDelivery.NewHandler(catalogService, suggestionService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildSlotStore picks the cache slot backend from configuration.
func buildSlotStore(cfg *config.Config) domain.SlotStore {
	switch cfg.Cache.Type {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisURL})
		return store.NewRedisSlot(client, cfg.Cache.RedisKey, cfg.Cache.Expiry)
	case "file":
		return store.NewFileSlot(cfg.Cache.Path)
	default:
		return store.NewMemorySlot()
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
