package main

import (
	"fmt"
	"log"
	"net/http"
	"time"
	"travelbuddy/cfg"
	"travelbuddy/internal/mockoffers"
	"travelbuddy/internal/trip"
	"travelbuddy/pkg/amadeus"
	"travelbuddy/pkg/cache"
	"travelbuddy/pkg/idgen"
	"travelbuddy/pkg/logger"
	"travelbuddy/pkg/textgen"

	"github.com/gin-gonic/gin"
)

const groqBaseURL = "https://api.groq.com"

func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Cache
	// ============
	redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
	redis := cache.NewRedisCache(redisAddr, config.RedisConfig.Password)

	// ============
	// External Services
	// ============
	httpClient := &http.Client{
		Timeout: 15 * time.Second,
	}

	var (
		source    trip.OfferSource
		locations trip.LocationResolver
		airlines  trip.AirlineNames
		generator textgen.Generator
	)
	if config.OfferSource == "mock" {
		mock := mockoffers.New()
		source, locations, airlines = mock, mock, mock
		generator = mockoffers.NewTextGenerator()
	} else {
		amadeusClient := amadeus.NewClient(httpClient,
			config.AmadeusConfig.BaseURL,
			config.AmadeusConfig.ClientID,
			config.AmadeusConfig.ClientSecret,
			zlogger,
		)
		source = amadeusClient
		locations = amadeusClient
		airlines = amadeus.NewAirlineResolver(amadeusClient, amadeus.NewNameCache())
		generator = textgen.NewGroqClient(httpClient, groqBaseURL,
			config.GroqConfig.APIKey, config.GroqConfig.Model, zlogger)
	}

	ids, err := idgen.NewSnowflakeGenerator(1)
	if err != nil {
		log.Fatalf("Failed to init id generator: %v", err)
	}

	// ============
	// Internal Service
	// ============
	tripSvc := trip.NewService(source, locations, airlines, redis, ids,
		config.CacheTTLMinutes, config.HomeIATA, zlogger)

	pipeline := trip.NewPipeline(zlogger,
		trip.NewParseStage(generator),
		trip.NewSearchStage(tripSvc),
		trip.NewItineraryStage(generator),
		trip.NewPackingStage(generator),
		trip.NewReminderStage(),
	)

	tripHandler := trip.NewTripHandler(tripSvc, pipeline)

	// ============
	// HTTP
	// ============
	r := gin.Default()

	tripHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
