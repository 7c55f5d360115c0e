// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	YouTube YouTubeConfig
	Scraper ScraperConfig
	Logging LoggingConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// StoreConfig selects and configures the persistence backend.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type StoreConfig struct {
	// Backend is either "postgres" or "sqlite".
	Backend  string
	Postgres PostgresConfig
	SQLite   SQLiteConfig
}

// PostgresConfig contains connection settings for the hosted backend.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type PostgresConfig struct {
	Host           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// SQLiteConfig contains settings for the embedded file-based backend.
type SQLiteConfig struct {
	Path string
}

// YouTubeConfig contains YouTube Data API settings.
type YouTubeConfig struct {
	APIKey string
}

// ScraperConfig contains the acquisition pipeline settings: category lists,
// content filters and query bounds.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ScraperConfig struct {
	Languages          []string
	Subjects           []string
	LocalePatterns     []string
	MinDurationSeconds int
	MaxResults         int64
	// UploadDateFilter is one of: any, hour, today, week, month, year.
	UploadDateFilter string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	setDefaults()

	// Read environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Store
	viper.SetDefault("store.backend", "sqlite")
	viper.SetDefault("store.sqlite.path", "tutorials.db")
	viper.SetDefault("store.postgres.host", "localhost")
	viper.SetDefault("store.postgres.port", 5432)
	viper.SetDefault("store.postgres.name", "tutorialscout")
	viper.SetDefault("store.postgres.user", "postgres")
	viper.SetDefault("store.postgres.password", "postgres")
	viper.SetDefault("store.postgres.sslmode", "disable")
	viper.SetDefault("store.postgres.maxconnections", 10)
	viper.SetDefault("store.postgres.minconnections", 2)
	viper.SetDefault("store.postgres.maxidletime", 10*time.Minute)
	viper.SetDefault("store.postgres.maxlifetime", 1*time.Hour)

	// YouTube
	viper.SetDefault("youtube.apikey", "")

	// Scraper
	viper.SetDefault("scraper.mindurationseconds", 120)
	viper.SetDefault("scraper.maxresults", 25)
	viper.SetDefault("scraper.uploaddatefilter", "month")
	viper.SetDefault("scraper.languages", defaultLanguages)
	viper.SetDefault("scraper.subjects", defaultSubjects)
	viper.SetDefault("scraper.localepatterns", defaultLocalePatterns)

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}

// defaultLanguages are the programming languages searched during a full sweep.
var defaultLanguages = []string{
	"Python",
	"JavaScript",
	"TypeScript",
	"Java",
	"C#",
	"C++",
	"Go",
	"Rust",
	"Ruby",
	"PHP",
	"Swift",
	"Kotlin",
	"SQL",
	"R",
	"Scala",
}

// defaultSubjects are the programming topics searched during a full sweep.
var defaultSubjects = []string{
	"Web Development",
	"Machine Learning",
	"Data Science",
	"Backend Development",
	"Frontend Development",
	"DevOps",
	"Cloud Computing",
	"Database",
	"API Development",
	"Mobile Development",
	"Game Development",
	"Algorithms",
	"Data Structures",
	"System Design",
	"Microservices",
	"Docker",
	"Kubernetes",
	"React",
	"Node.js",
	"Django",
	"Flask",
	"FastAPI",
	"Spring Boot",
	"REST API",
	"GraphQL",
}

// defaultLocalePatterns are regional-language indicators used by the
// locale-exclusion filter. Matched word-boundary, case-insensitive against
// title, description and channel name. The list is a product decision and can
// be replaced wholesale via configuration.
var defaultLocalePatterns = []string{
	`\b(hindi|हिंदी|हिन्दी)\b`,
	`\b(tamil|தமிழ்)\b`,
	`\b(telugu|తెలుగు)\b`,
	`\b(malayalam|മലയാളം)\b`,
	`\b(kannada|ಕನ್ನಡ)\b`,
	`\b(bengali|বাংলা)\b`,
	`\b(marathi|मराठी)\b`,
	`\b(gujarati|ગુજરાતી)\b`,
	`\b(punjabi|ਪੰਜਾਬੀ)\b`,
	`\bin hindi\b`,
	`\bhindi tutorial\b`,
	`\bhindi me\b`,
	`\bhindi mein\b`,
}
