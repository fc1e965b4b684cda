package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServicePort      string `envconfig:"SERVICE_PORT" default:"8080"`
	MetricsPort      string `envconfig:"METRICS_PORT" default:"9090"`
	Environment      string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	PlaceholderImage string `envconfig:"PLACEHOLDER_IMAGE" default:"https://via.placeholder.com/400x300?text=No+Image"`
	MongoDBConfig    MongoDBConfig
	AdminConfig      AdminConfig
	JWTConfig        JWTConfig
	ImageKitConfig   ImageKitConfig
	RedisConfig      RedisConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
}

type MongoDBConfig struct {
	URI      string `envconfig:"MONGODB_URI"`
	Database string `envconfig:"MONGODB_DATABASE" default:"storefront"`
}

// AdminConfig holds the single admin identity. Password may be a bcrypt hash.
type AdminConfig struct {
	APIKey   string `envconfig:"ADMIN_KEY"`
	Email    string `envconfig:"ADMIN_EMAIL"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}

type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET"`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"1h"`
}

type ImageKitConfig struct {
	PrivateKey  string `envconfig:"IMAGEKIT_PRIVATE_KEY"`
	URLEndpoint string `envconfig:"IMAGEKIT_URL_ENDPOINT"`
	Folder      string `envconfig:"IMAGEKIT_FOLDER" default:"/Ecommerce"`
	UploadURL   string `envconfig:"IMAGEKIT_UPLOAD_URL" default:"https://upload.imagekit.io/api/v1/files/upload"`
	APIURL      string `envconfig:"IMAGEKIT_API_URL" default:"https://api.imagekit.io/v1"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	ViewCacheTTL time.Duration `envconfig:"VIEW_CACHE_TTL" default:"1h"`
}

type KafkaConfig struct {
	BrokerAddress string `envconfig:"BROKER_ADDRESS"`
	BrokerTopic   string `envconfig:"BROKER_TOPIC" default:"storefront.revalidate"`
	GroupID       string `envconfig:"BROKER_GROUP_ID" default:"storefront-service"`
}

type TracingConfig struct {
	CollectorHost string `envconfig:"COLLECTOR_HOST"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func CreateNewConfig() (*Config, error) {
	godotenv.Load(".env")

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		return nil, err
	}

	return &conf, nil
}
