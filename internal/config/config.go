package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	LogLevel   string
	Port       string
	DBType     string
	DBDSN      string
	DataFile   string
	BackendURL string
	GroqAPIKey string
	GroqModel  string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:        getEnv("APP_ENV", "development"),
			LogLevel:   getEnv("LOG_LEVEL", "info"),
			Port:       getEnv("PORT", "8090"),
			DBType:     getEnv("STORAGE_BACKEND", "file"),
			DBDSN:      getEnv("POSTGRES_DSN", ""),
			DataFile:   getEnv("DATA_FILE", "data/pulso.json"),
			BackendURL: getEnv("HEALTHGUARD_API_URL", "http://localhost:8000"),
			GroqAPIKey: getEnv("GROQ_API_KEY", ""),
			GroqModel:  getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && c.DataFile == "" {
		return errors.New("File storage requires DATA_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
