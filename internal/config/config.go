package config

import (
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Cache    CacheConfig
	Sheets   SheetsConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogFormat      string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq style connection string.
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.DBName + " sslmode=" + c.SSLMode
}

type AppConfig struct {
	Timezone string
	// Location is resolved from Timezone; falls back to UTC when the zone is unknown.
	Location *time.Location
}

type CacheConfig struct {
	Enabled        bool
	RedisURL       string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	FeedTTLSeconds int
}

// SheetsConfig describes where the three datasets live and how they are read
// and written.
type SheetsConfig struct {
	Source           string // "csv" or "api"
	FeedBaseURL      string
	ItemsSheetID     string
	ItemsTab         string
	CustomersSheetID string
	CustomersTab     string
	SalesSheetID     string
	SalesTab         string
	WriteEndpoint    string
	WriteSheetID     string
	CredentialsJSON  string

	Attempts       int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults(viper.GetViper())

		// Read from environment variables
		viper.AutomaticEnv()

		instance = fromViper(viper.GetViper())
	})

	return instance
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER_RATE_LIMIT_RPS", 20.0)
	v.SetDefault("SERVER_RATE_LIMIT_BURST", 40)

	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "salesdash")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("APP_TIMEZONE", "Asia/Bangkok")

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_FEED_TTL_SECONDS", 300)

	v.SetDefault("SHEETS_SOURCE", "csv")
	v.SetDefault("SHEETS_FEED_BASE_URL", "https://docs.google.com/spreadsheets/d")
	v.SetDefault("SHEETS_ITEMS_ID", "")
	v.SetDefault("SHEETS_ITEMS_TAB", "Items")
	v.SetDefault("SHEETS_CUSTOMERS_ID", "")
	v.SetDefault("SHEETS_CUSTOMERS_TAB", "Customers")
	v.SetDefault("SHEETS_SALES_ID", "")
	v.SetDefault("SHEETS_SALES_TAB", "Sales")
	v.SetDefault("SHEETS_WRITE_ENDPOINT", "")
	v.SetDefault("SHEETS_WRITE_ID", "")
	v.SetDefault("GOOGLE_CREDENTIALS_JSON", "")
	v.SetDefault("SHEETS_FETCH_ATTEMPTS", 3)
	v.SetDefault("SHEETS_FETCH_BASE_DELAY_MS", 2000)
	v.SetDefault("SHEETS_FETCH_TIMEOUT_MS", 10000)

	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "salesdash-reports")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("STORAGE_PREFIX", "exports")
}

func fromViper(v *viper.Viper) *Config {
	tz := v.GetString("APP_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			RateLimitRPS:   v.GetFloat64("SERVER_RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("SERVER_RATE_LIMIT_BURST"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("DB_ENABLED"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		App: AppConfig{
			Timezone: tz,
			Location: loc,
		},
		Cache: CacheConfig{
			Enabled:        v.GetBool("CACHE_ENABLED"),
			RedisURL:       v.GetString("REDIS_URL"),
			RedisHost:      v.GetString("REDIS_HOST"),
			RedisPort:      v.GetString("REDIS_PORT"),
			RedisPassword:  v.GetString("REDIS_PASSWORD"),
			RedisDB:        v.GetInt("REDIS_DB"),
			FeedTTLSeconds: v.GetInt("CACHE_FEED_TTL_SECONDS"),
		},
		Sheets: SheetsConfig{
			Source:           strings.ToLower(v.GetString("SHEETS_SOURCE")),
			FeedBaseURL:      strings.TrimRight(v.GetString("SHEETS_FEED_BASE_URL"), "/"),
			ItemsSheetID:     v.GetString("SHEETS_ITEMS_ID"),
			ItemsTab:         v.GetString("SHEETS_ITEMS_TAB"),
			CustomersSheetID: v.GetString("SHEETS_CUSTOMERS_ID"),
			CustomersTab:     v.GetString("SHEETS_CUSTOMERS_TAB"),
			SalesSheetID:     v.GetString("SHEETS_SALES_ID"),
			SalesTab:         v.GetString("SHEETS_SALES_TAB"),
			WriteEndpoint:    v.GetString("SHEETS_WRITE_ENDPOINT"),
			WriteSheetID:     v.GetString("SHEETS_WRITE_ID"),
			CredentialsJSON:  v.GetString("GOOGLE_CREDENTIALS_JSON"),
			Attempts:         v.GetInt("SHEETS_FETCH_ATTEMPTS"),
			BaseDelay:        time.Duration(v.GetInt("SHEETS_FETCH_BASE_DELAY_MS")) * time.Millisecond,
			AttemptTimeout:   time.Duration(v.GetInt("SHEETS_FETCH_TIMEOUT_MS")) * time.Millisecond,
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
			Prefix:    v.GetString("STORAGE_PREFIX"),
		},
	}
}
