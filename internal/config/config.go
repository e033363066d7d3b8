package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type ProviderConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type Config struct {
	RunAddress        string
	DatabaseURI       string
	SecretKey         string
	ProvidersFile     string
	Providers         map[string]ProviderConfig
	TelegramToken     string
	TelegramAdminChat int64
}

func NewConfig() (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := &Config{}
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "DB connection string")
	flag.StringVar(&cfg.SecretKey, "k", "", "JWT signing key")
	flag.StringVar(&cfg.ProvidersFile, "p", "providers.yaml", "providers config file")
	flag.Parse()

	ReadServerEnvironment(cfg)

	if err := cfg.LoadProviders(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func ReadServerEnvironment(cfg *Config) {
	if runAddress := os.Getenv("RUN_ADDRESS"); runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if databaseURI := os.Getenv("DATABASE_URI"); databaseURI != "" {
		cfg.DatabaseURI = databaseURI
	}

	if secretKey := os.Getenv("SECRET_KEY"); secretKey != "" {
		cfg.SecretKey = secretKey
	}

	if providersFile := os.Getenv("PROVIDERS_FILE"); providersFile != "" {
		cfg.ProvidersFile = providersFile
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chat := os.Getenv("TELEGRAM_ADMIN_CHAT"); chat != "" {
		if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
			cfg.TelegramAdminChat = id
		}
	}
}

// LoadProviders reads the per-providerKey base URL + API key map. A
// missing file is not fatal: the panel can run with an empty catalog.
func (cfg *Config) LoadProviders() error {
	cfg.Providers = map[string]ProviderConfig{}

	data, err := os.ReadFile(cfg.ProvidersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read providers file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg.Providers); err != nil {
		return fmt.Errorf("parse providers file: %w", err)
	}

	return nil
}
