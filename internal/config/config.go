package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the sky briefing service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8974"`

	// Default observer location, used when a request does not supply one
	DefaultLatitude  float64 `env:"DEFAULT_LATITUDE,default=40.7128"`
	DefaultLongitude float64 `env:"DEFAULT_LONGITUDE,default=-74.0060"`

	// OpenAI configuration (optional, used to polish the narrative)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4o-mini"`

	// GCP configuration (optional for local testing)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// Local testing configuration
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`

	// Data source URLs
	USNOOneDayURL    string `env:"USNO_ONEDAY_URL,default=https://aa.usno.navy.mil/api/rstt/oneday"`
	SunriseSunsetURL string `env:"SUNRISE_SUNSET_URL,default=https://api.sunrise-sunset.org/json"`
	SWPCKIndexURL    string `env:"SWPC_K_INDEX_URL,default=https://services.swpc.noaa.gov/products/noaa-planetary-k-index.json"`
	SWPCKForecastURL string `env:"SWPC_K_FORECAST_URL,default=https://services.swpc.noaa.gov/products/noaa-planetary-k-index-forecast.json"`
	SWPCSolarWindURL string `env:"SWPC_SOLAR_WIND_URL,default=https://services.swpc.noaa.gov/products/solar-wind/plasma-7-day.json"`
	SIDCRSSURL       string `env:"SIDC_RSS_URL,default=https://www.sidc.be/products/meu"`
	OpenMeteoURL     string `env:"OPEN_METEO_URL,default=https://api.open-meteo.com/v1/forecast"`

	// Fetch policy
	FetchTimeoutSeconds int `env:"FETCH_TIMEOUT_SECONDS,default=10"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
