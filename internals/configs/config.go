package configs

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// =======================
// CONFIG
// =======================

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type OSSConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SecurityToken string
	Bucket        string
	Prefix        string
}

type Config struct {
	Env      string
	Port     string
	LogLevel string

	DB DBConfig

	JWTSecret  string
	SessionTTL time.Duration

	StorageDriver string
	UploadDir     string
	LetterDir     string
	OSS           OSSConfig
	MaxBodyBytes  int

	AdminUsername string
	AdminPassword string

	CORSAllowOrigins     string
	BlacklistCleanupSpec string

	UniversityName   string
	LetterReportDays int
}

// =======================
// ENV LOADER
// =======================

// LoadEnv reads .env (outside production) and builds the Config from the process env.
func LoadEnv(log logrus.FieldLogger) *Config {
	if GetEnv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Info("no .env file found, using system environment")
		} else {
			log.Info(".env file loaded")
		}
	}

	cfg := &Config{
		Env:      GetEnv("APP_ENV", "development"),
		Port:     GetEnv("PORT", "3000"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Host:        GetEnv("DB_HOST", "localhost"),
			Port:        GetEnv("DB_PORT", "5432"),
			User:        GetEnv("DB_USER"),
			Password:    GetEnv("DB_PASSWORD"),
			Name:        GetEnv("DB_NAME", "admission_system"),
			SSLMode:     GetEnv("DB_SSLMODE", "disable"),
			AutoMigrate: GetEnvBool("DB_AUTO_MIGRATE", true),
		},
		JWTSecret:     strings.TrimSpace(GetEnv("JWT_SECRET")),
		SessionTTL:    GetEnvDuration("SESSION_TTL", 12*time.Hour),
		StorageDriver: strings.ToLower(GetEnv("STORAGE_DRIVER", "local")),
		UploadDir:     GetEnv("UPLOAD_DIR", "static/uploads"),
		LetterDir:     GetEnv("LETTER_DIR", "static/admission_letters"),
		OSS: OSSConfig{
			Endpoint:      GetEnv("ALI_OSS_ENDPOINT"),
			AccessKey:     GetEnv("ALI_OSS_ACCESS_KEY"),
			SecretKey:     GetEnv("ALI_OSS_SECRET_KEY"),
			SecurityToken: GetEnv("ALI_OSS_SECURITY_TOKEN"),
			Bucket:        GetEnv("ALI_OSS_BUCKET"),
			Prefix:        GetEnv("ALI_OSS_PREFIX", "admissions"),
		},
		MaxBodyBytes:         GetEnvInt("MAX_BODY_BYTES", 16*1024*1024),
		AdminUsername:        GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:        GetEnv("ADMIN_PASSWORD"),
		CORSAllowOrigins:     GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		BlacklistCleanupSpec: GetEnv("TOKEN_BLACKLIST_CLEANUP", "@every 24h"),
		UniversityName:       GetEnv("UNIVERSITY_NAME", "University Name"),
		LetterReportDays:     GetEnvInt("LETTER_REPORT_DAYS", 30),
	}

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set")
	}
	return cfg
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	switch c.StorageDriver {
	case "local":
	case "oss":
		if c.OSS.Endpoint == "" || c.OSS.AccessKey == "" || c.OSS.SecretKey == "" || c.OSS.Bucket == "" {
			return errors.New("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
		}
	default:
		return errors.New("STORAGE_DRIVER must be local or oss")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be positive")
	}
	return nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(GetEnv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(GetEnv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(GetEnv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
