package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/budgeapp/backend/internal/banksync"
	"github.com/budgeapp/backend/internal/llm"
	"github.com/budgeapp/backend/internal/models"
	"github.com/budgeapp/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A .env file is optional, used for local development next to the
	// mobile client
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		dataDir := filepath.Join(".", "data")
		if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
			log.Fatal().Msg(err.Error())
		}
		dsn = filepath.Join(dataDir, "gorm.db")
	}

	if err := models.Connect(dsn); err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := router.RegisterMetrics(); err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer router.UnregisterMetrics()

	jwtSecret, ok := os.LookupEnv("JWT_SECRET")
	if !ok {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	config := router.Config{
		JWTSecret: jwtSecret,
		Advisor:   advisorFromEnv(),
		Fetcher:   fetcherFromEnv(),
	}

	r := router.New()
	router.AttachRoutes(config, r.Group(""))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

// advisorFromEnv configures the LLM client. The advisor works without
// one, answering from the deterministic fallback.
func advisorFromEnv() *llm.Advisor {
	apiKey, ok := os.LookupEnv("OPENAI_API_KEY")
	if !ok {
		log.Info().Msg("OPENAI_API_KEY not set, AI chat answers with fallback summaries")
		return llm.NewAdvisor(nil)
	}

	endpoint, ok := os.LookupEnv("LLM_ENDPOINT")
	if !ok {
		endpoint = "https://api.openai.com/v1"
	}

	model, ok := os.LookupEnv("LLM_MODEL")
	if !ok {
		model = "gpt-4o-mini"
	}

	return llm.NewAdvisor(llm.NewClient(endpoint, apiKey, model))
}

// fetcherFromEnv configures the Plaid client. Sync stays disabled when
// the credentials are incomplete.
func fetcherFromEnv() banksync.Fetcher {
	config := banksync.PlaidConfig{
		ClientID:    os.Getenv("PLAID_CLIENT_ID"),
		Secret:      os.Getenv("PLAID_SECRET"),
		Environment: os.Getenv("PLAID_ENV"),
		AccessToken: os.Getenv("PLAID_ACCESS_TOKEN"),
	}

	fetcher, err := banksync.NewPlaidFetcher(config)
	if err != nil {
		log.Info().Msgf("bank sync disabled: %s", err)
		return nil
	}

	return fetcher
}
