package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	amadeusTestBaseURL = "https://test.api.amadeus.com"
	amadeusProdBaseURL = "https://api.amadeus.com"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

type GroqConfig struct {
	APIKey string
	Model  string
}

type Config struct {
	AppEnv          string
	AppPort         string
	RedisConfig     RedisConfig
	AmadeusConfig   AmadeusConfig
	GroqConfig      GroqConfig
	CacheTTLMinutes int
	// OfferSource selects the offer backend: "amadeus" or "mock".
	OfferSource string
	// HomeIATA is used as the origin when a request leaves it blank.
	HomeIATA string
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)
	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := mustEnv("REDIS_PASSWORD", &errs)

	offerSource := os.Getenv("OFFER_SOURCE")
	if offerSource == "" {
		offerSource = "amadeus"
	}
	if offerSource != "amadeus" && offerSource != "mock" {
		errs = append(errs, errors.New("invalid env OFFER_SOURCE: "+offerSource))
	}

	// Provider and LLM credentials are only mandatory for the real backend;
	// the mock source runs fully offline.
	var amadeusClientID, amadeusClientSecret, groqAPIKey string
	if offerSource == "amadeus" {
		amadeusClientID = mustEnv("AMADEUS_CLIENT_ID", &errs)
		amadeusClientSecret = mustEnv("AMADEUS_CLIENT_SECRET", &errs)
		groqAPIKey = mustEnv("GROQ_API_KEY", &errs)
	}
	amadeusBaseURL := amadeusTestBaseURL
	if os.Getenv("AMADEUS_ENV") == "production" {
		amadeusBaseURL = amadeusProdBaseURL
	}

	groqModel := os.Getenv("GROQ_MODEL")
	if groqModel == "" {
		groqModel = "llama3-8b-8192"
	}

	cacheTTLMinutes := mustEnv("CACHE_TTL_MINUTES", &errs)
	cacheTTLMinutesInt, err := strconv.Atoi(cacheTTLMinutes)
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: "+"CACHE_TTL_MINUTES"))
	}

	homeIATA := os.Getenv("HOME_IATA")
	if homeIATA == "" {
		homeIATA = "LHE"
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		RedisConfig: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		AmadeusConfig: AmadeusConfig{
			BaseURL:      amadeusBaseURL,
			ClientID:     amadeusClientID,
			ClientSecret: amadeusClientSecret,
		},
		GroqConfig: GroqConfig{
			APIKey: groqAPIKey,
			Model:  groqModel,
		},
		CacheTTLMinutes: cacheTTLMinutesInt,
		OfferSource:     offerSource,
		HomeIATA:        homeIATA,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}
