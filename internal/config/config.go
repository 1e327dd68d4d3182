package config

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvProduction = "production"

	// DefaultOpenWeatherAPIKey is the documented fallback. It is a placeholder and
	// lookups made with it are rejected by OpenWeather; set OPENWEATHER_API_KEY.
	DefaultOpenWeatherAPIKey = "openweather-demo-key"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		URL            string `mapstructure:"url"`
		Name           string `mapstructure:"name"`
		MigrationsPath string `mapstructure:"migrations_path"`
	} `mapstructure:"db"`
	Weather struct {
		APIKey  string        `mapstructure:"api_key"`
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"weather"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
		ServiceName  string `mapstructure:"service_name"`
	} `mapstructure:"tracing"`
	Web struct {
		Port              string        `mapstructure:"port"`
		APIBaseURL        string        `mapstructure:"api_base_url"`
		ReconnectInterval time.Duration `mapstructure:"reconnect_interval"`
	} `mapstructure:"web"`
}

func (c Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}

// LoadConfig reads .env and config.yaml from the given directories (default ".")
// and overlays environment variables.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, len(paths))
	for i, p := range paths {
		envFiles[i] = filepath.Join(p, ".env")
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read environment only. Error: %v", err)
	}

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("db.name", "rentredi")
	v.SetDefault("db.migrations_path", "migrations")
	v.SetDefault("weather.api_key", DefaultOpenWeatherAPIKey)
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.timeout", 10*time.Second)
	v.SetDefault("kafka.topic", "user.events")
	v.SetDefault("tracing.service_name", "rentredi-api")
	v.SetDefault("web.port", "5173")
	v.SetDefault("web.api_base_url", "http://localhost:8080")
	v.SetDefault("web.reconnect_interval", 5*time.Second)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "PORT", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.url", "DB_URL", "DATABASE_URL")
	v.BindEnv("db.name", "DB_NAME")
	v.BindEnv("db.migrations_path", "DB_MIGRATIONS_PATH")
	v.BindEnv("weather.api_key", "OPENWEATHER_API_KEY")
	v.BindEnv("weather.base_url", "OPENWEATHER_BASE_URL")
	v.BindEnv("weather.timeout", "OPENWEATHER_TIMEOUT")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.topic", "KAFKA_TOPIC")
	v.BindEnv("tracing.otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("tracing.service_name", "OTEL_SERVICE_NAME")
	v.BindEnv("web.port", "WEB_PORT")
	v.BindEnv("web.api_base_url", "API_BASE_URL")
	v.BindEnv("web.reconnect_interval", "RECONNECT_INTERVAL")

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	// KAFKA_BROKERS arrives as a single comma separated string.
	if len(cfg.Kafka.Brokers) == 1 && strings.Contains(cfg.Kafka.Brokers[0], ",") {
		cfg.Kafka.Brokers = strings.Split(cfg.Kafka.Brokers[0], ",")
	}
	brokers := cfg.Kafka.Brokers[:0]
	for _, b := range cfg.Kafka.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	cfg.Kafka.Brokers = brokers

	if cfg.DB.URL == "" {
		log.Println("[config] DB_URL is not set. Falling back to the in-memory user store.")
	}
	if cfg.Weather.APIKey == DefaultOpenWeatherAPIKey {
		log.Println("[config] OPENWEATHER_API_KEY is not set. Using the placeholder key.")
	}
	return cfg, nil
}
