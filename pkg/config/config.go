package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the process reads from the environment at startup.
type Config struct {
	Port              string `envconfig:"PORT" default:"8080"`
	Env               string `envconfig:"ENV" default:"development"`
	MongoURI          string `envconfig:"MONGODB_URI" required:"true"`
	DBName            string `envconfig:"DB_NAME" default:"videotube"`
	CORSOrigin        string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`
	AccessTokenSecret string `envconfig:"ACCESS_TOKEN_SECRET" default:"supersecretjwtkey"`
	AccessTokenExpiry string `envconfig:"ACCESS_TOKEN_EXPIRY" default:"24h"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"videotube"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	MinioPublicURL string `envconfig:"MINIO_PUBLIC_URL" default:"http://localhost:9000"`
}

// Load reads the .env file (if present) and processes the environment.
// A missing MONGODB_URI is fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return &cfg
}
