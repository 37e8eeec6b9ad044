package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DB          DBConfig
	JWTSecret   []byte
	CORSOrigins []string
	Store       StoreConfig
}

type DBConfig struct {
	Driver   string // "postgres" or "sqlite"
	URL      string // full DSN; takes precedence over the discrete fields
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// StoreConfig holds the storefront knobs the handlers read.
type StoreConfig struct {
	DeliveryFee     float64
	MaxPhotoBytes   int64
	ProductsPerPage int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	fee, err := strconv.ParseFloat(getEnv("DELIVERY_FEE", "25"), 64)
	if err != nil || fee < 0 {
		return nil, fmt.Errorf("invalid DELIVERY_FEE %q", os.Getenv("DELIVERY_FEE"))
	}
	maxPhoto, err := strconv.ParseInt(getEnv("MAX_PHOTO_BYTES", "1000000"), 10, 64)
	if err != nil || maxPhoto <= 0 {
		return nil, fmt.Errorf("invalid MAX_PHOTO_BYTES %q", os.Getenv("MAX_PHOTO_BYTES"))
	}
	perPage, err := strconv.Atoi(getEnv("PRODUCTS_PER_PAGE", "6"))
	if err != nil || perPage <= 0 {
		return nil, fmt.Errorf("invalid PRODUCTS_PER_PAGE %q", os.Getenv("PRODUCTS_PER_PAGE"))
	}

	return &Config{
		Port: getEnv("PORT", "8080"),
		DB: DBConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "shopeklopek"),
		},
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Store: StoreConfig{
			DeliveryFee:     fee,
			MaxPhotoBytes:   maxPhoto,
			ProductsPerPage: perPage,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
