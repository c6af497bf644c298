package configs

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"production"`
	Port     string `envconfig:"PORT" default:"8000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBSource string `envconfig:"DB_SOURCE" default:"foodorder.db?_busy_timeout=5000&_txlock=immediate"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"changeme"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"order-events"`

	// stand-in for a dispatch system; 0 means no partner gets assigned
	// unless the demo seed supplies its rider
	DeliveryPartnerID uint `envconfig:"DELIVERY_PARTNER_ID" default:"0"`

	SeedDemo bool `envconfig:"SEED_DEMO" default:"false"`
}

func (c *Config) Development() bool { return c.AppEnv == "development" }

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
