package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/config.yaml"

type Config struct {
	App     AppConfig     `yaml:"app" envconfig:"APP"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Log     LogConfig     `yaml:"log" envconfig:"LOG"`
	Weather WeatherConfig `yaml:"weather" envconfig:"OWM"`
	Mongo   MongoConfig   `yaml:"mongo" envconfig:"MONGO"`
	Refresh RefreshConfig `yaml:"refresh" envconfig:"REFRESH"`
	Sentry  SentryConfig  `yaml:"sentry" envconfig:"SENTRY"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"NAME"`
	Version string `yaml:"version" envconfig:"VERSION"`
	Env     string `yaml:"env" envconfig:"ENV"`
}

type ServerConfig struct {
	Port         string        `yaml:"port" envconfig:"PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
}

// WeatherConfig configures the OpenWeatherMap client.
type WeatherConfig struct {
	APIKey  string        `yaml:"api_key,omitempty" envconfig:"API_KEY"`
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

type MongoConfig struct {
	URI               string        `yaml:"uri" envconfig:"URI"`
	Database          string        `yaml:"database" envconfig:"DATABASE"`
	UsersCollection   string        `yaml:"users_collection" envconfig:"USERS_COLLECTION"`
	CatalogCollection string        `yaml:"catalog_collection" envconfig:"CATALOG_COLLECTION"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// RefreshConfig drives the background refresh of every user's cities. A zero interval disables it.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval" envconfig:"INTERVAL"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn,omitempty" envconfig:"DSN"`
	Debug bool   `yaml:"debug" envconfig:"DEBUG"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads defaults, then the YAML file, then .env and the process environment.
type FileConfigProvider struct {
	path    string
	envFile string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path, envFile: ".env"}
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cnf, nil
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "city-weather",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "3000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5",
			Timeout: 10 * time.Second,
		},
		Mongo: MongoConfig{
			Database:          "weatherapp",
			UsersCollection:   "users",
			CatalogCollection: "cities",
			Timeout:           10 * time.Second,
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Default()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load(p.envFile)

	// Environment variables win over the file; fields without a variable keep their value.
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	var problems []string

	if strings.TrimSpace(cnf.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(cnf.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if strings.TrimSpace(cnf.Weather.APIKey) == "" {
		problems = append(problems, "weather.api_key is required (OWM_API_KEY)")
	}
	if cnf.Weather.Timeout <= 0 {
		problems = append(problems, "weather.timeout must be positive")
	}
	if strings.TrimSpace(cnf.Mongo.URI) == "" {
		problems = append(problems, "mongo.uri is required (MONGO_URI)")
	}
	if cnf.Mongo.Database == "" || cnf.Mongo.UsersCollection == "" || cnf.Mongo.CatalogCollection == "" {
		problems = append(problems, "mongo.database and collection names are required")
	}
	if cnf.Refresh.Interval < 0 {
		problems = append(problems, "refresh.interval cannot be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.App.Env == "dev"
}
