package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Data backends the history and catalog can be read from
const (
	BackendMongo    = "mongo"
	BackendDynamoDB = "dynamodb"
	BackendSnapshot = "snapshot"
	BackendHTTP     = "http"
	BackendMock     = "mock"
)

// Storage modes of the snapshot backend
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Config holds all configuration for the air quality chart service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Data backend selection
	DataBackend string `env:"DATA_BACKEND,default=mongo"`

	// MongoDB configuration
	MongoURI      string `env:"MONGO_URI,default=mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE,default=air_quality"`

	// DynamoDB configuration
	DynamoDBRegion        string `env:"DYNAMODB_REGION,default=eu-west-3"`
	DynamoDBEndpoint      string `env:"DYNAMODB_ENDPOINT"`
	DynamoDBWorkingTable  string `env:"DYNAMODB_WORKING_DAYS_TABLE,default=working_days"`
	DynamoDBWeekendsTable string `env:"DYNAMODB_WEEKENDS_TABLE,default=weekends"`

	// Snapshot configuration
	SnapshotPath string `env:"SNAPSHOT_PATH,default=snapshot.json"`
	StorageMode  string `env:"STORAGE_MODE,default=local"`
	LocalDataDir string `env:"LOCAL_DATA_DIR,default=./data"`

	// GCP configuration (snapshot in GCS)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// HTTP document service
	HTTPStoreURL   string `env:"HTTP_STORE_URL"`
	HTTPStoreToken string `env:"HTTP_STORE_TOKEN"`

	// Analysis configuration
	PollutantsFile       string `env:"POLLUTANTS_FILE"`
	DefaultLookbackDays  int    `env:"DEFAULT_LOOKBACK_DAYS,default=90"`
	AnalysisPeriodDays   int    `env:"ANALYSIS_PERIOD_DAYS,default=180"`
	IncludeOldestReading bool   `env:"INCLUDE_OLDEST_READING,default=false"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	cfg.DataBackend = strings.ToLower(strings.TrimSpace(cfg.DataBackend))
	cfg.StorageMode = strings.ToLower(strings.TrimSpace(cfg.StorageMode))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings required by the selected backend
func (c *Config) Validate() error {
	if c.AnalysisPeriodDays <= 0 {
		return fmt.Errorf("ANALYSIS_PERIOD_DAYS must be positive, got %d", c.AnalysisPeriodDays)
	}
	if c.DefaultLookbackDays <= 0 || c.DefaultLookbackDays > c.AnalysisPeriodDays {
		return fmt.Errorf("DEFAULT_LOOKBACK_DAYS must be within 1-%d, got %d", c.AnalysisPeriodDays, c.DefaultLookbackDays)
	}

	switch c.DataBackend {
	case BackendMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("mongo backend requires MONGO_URI and MONGO_DATABASE")
		}
	case BackendDynamoDB:
		if c.DynamoDBRegion == "" {
			return fmt.Errorf("dynamodb backend requires DYNAMODB_REGION")
		}
	case BackendSnapshot:
		switch c.StorageMode {
		case StorageLocal:
		case StorageGCS:
			if c.GCSBucket == "" {
				return fmt.Errorf("gcs storage mode requires GCS_BUCKET")
			}
		default:
			return fmt.Errorf("unsupported storage mode: %s", c.StorageMode)
		}
	case BackendHTTP:
		if c.HTTPStoreURL == "" {
			return fmt.Errorf("http backend requires HTTP_STORE_URL")
		}
	case BackendMock:
	default:
		return fmt.Errorf("unsupported data backend: %s", c.DataBackend)
	}
	return nil
}

// IsLocal reports whether the service runs on a developer machine
func (c *Config) IsLocal() bool {
	return c.Environment == "local" || c.Environment == "development"
}
