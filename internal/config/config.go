package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // sqlite, postgres
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	Storage struct {
		UploadDir string `yaml:"upload_dir"` // root for uploaded files
		DataDir   string `yaml:"data_dir"`   // root for JSON collections
	} `yaml:"storage"`

	Auth struct {
		// ProtectMutations gates POST/PUT/DELETE behind an admin token.
		// Off by default so a fresh deployment behaves like a public demo.
		ProtectMutations bool   `yaml:"protect_mutations"`
		JWTSecret        string `yaml:"jwt_secret"`
		TokenTTLMinutes  int    `yaml:"token_ttl_minutes"`
		AdminUsername    string `yaml:"admin_username"`
		AdminPassword    string `yaml:"admin_password"`
	} `yaml:"auth"`

	Log struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`

	Upload struct {
		MaxSizeMB int64 `yaml:"max_size_mb"`
	} `yaml:"upload"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or builds the config from environment
// variables when DATABASE_DSN is set (tests and container deployments).
func LoadConfig() {
	var cfg Config

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.Driver = envOr("DATABASE_DRIVER", "sqlite")
		cfg.Database.DSN = dsn
		cfg.Server.Env = envOr("SERVER_ENV", "development")
		cfg.Server.Port, _ = strconv.Atoi(envOr("SERVER_PORT", "3000"))
		cfg.Storage.UploadDir = envOr("UPLOAD_DIR", "./uploads")
		cfg.Storage.DataDir = envOr("DATA_DIR", "./data")
		cfg.Auth.JWTSecret = envOr("JWT_SECRET", "secret")
		cfg.Auth.TokenTTLMinutes = 60 * 24
		cfg.Auth.ProtectMutations = os.Getenv("PROTECT_MUTATIONS") == "on"
		cfg.Auth.AdminUsername = os.Getenv("ADMIN_USERNAME")
		cfg.Auth.AdminPassword = os.Getenv("ADMIN_PASSWORD")
		cfg.Upload.MaxSizeMB = 50
		AppConfig = &cfg
		return
	}

	configPath := envOr("CONFIG_PATH", "config/config.yaml")
	f, err := os.Open(configPath)
	if err != nil {
		log.Fatalf("Failed to open config file at %s: %v", configPath, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
	}

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "data/cms.db"
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "./uploads"
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "./data"
	}
	if cfg.Auth.TokenTTLMinutes == 0 {
		cfg.Auth.TokenTTLMinutes = 60 * 24
	}
	if cfg.Upload.MaxSizeMB == 0 {
		cfg.Upload.MaxSizeMB = 50
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetConfig lazily loads and returns the process configuration.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
