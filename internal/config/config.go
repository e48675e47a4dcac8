package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the server and relay binaries.
type Config struct {
	HTTPAddr  string // combined server listen address
	RelayAddr string // relay listen address
	Env       string

	DataDir string // directory holding the snapshot files

	APIBase string // base URL of the persistence service, used by the relay

	SessionKey string // cookie session signing key

	RequireGroupMembership bool // reject group messages from non-members

	LawRegisterPath string // xlsx workbook with the legal register
	AdviceURL       string // chat-completion endpoint for consultations
	AdviceModel     string
}

// Load reads configuration from environment variables, with a .env file as
// a development convenience.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:               getEnv("HTTP_ADDR", ":3000"),
		RelayAddr:              getEnv("RELAY_ADDR", ":8001"),
		Env:                    getEnv("ENV", "development"),
		DataDir:                getEnv("DATA_DIR", "data"),
		APIBase:                getEnv("API_BASE", "http://localhost:3000"),
		SessionKey:             getEnv("SESSION_KEY", "estateline-dev-key"),
		RequireGroupMembership: getEnv("REQUIRE_GROUP_MEMBERSHIP", "false") == "true",
		LawRegisterPath:        getEnv("LAW_REGISTER", filepath.Join("data", "laws.xlsx")),
		AdviceURL:              getEnv("ADVICE_URL", "http://127.0.0.1:11434/api/chat"),
		AdviceModel:            getEnv("ADVICE_MODEL", "gpt-oss:120b-cloud"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// SnapshotPath resolves a snapshot file name inside the data directory.
func (c *Config) SnapshotPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
