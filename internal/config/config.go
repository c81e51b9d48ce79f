package config

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Bucket         string

	ServerPort int

	// ThumbnailSizes maps a size name to its max width in pixels.
	ThumbnailSizes map[string]int

	// StuckThumbnailAfter is how long a PROCESSING marker is trusted before
	// the work is considered abandoned.
	StuckThumbnailAfter time.Duration

	// Retry gate for the metadata extraction stage.
	GateRetryMaxAttempts int
	GateRetryDelay       time.Duration

	TaggerEndpoint string
	TaggerAPIKey   string
}

const defaultThumbnailSizes = "thumb:150,small:320,medium:640,large:1280"

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	for _, key := range []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
	} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	viper.SetDefault("MINIO_BUCKET", "assets")
	viper.SetDefault("THUMBNAIL_SIZES", defaultThumbnailSizes)
	viper.SetDefault("STUCK_THUMBNAIL_AFTER", 600)
	viper.SetDefault("GATE_RETRY_MAX_ATTEMPTS", 5)
	viper.SetDefault("GATE_RETRY_DELAY", 30)

	sizes, err := parseThumbnailSizes(viper.GetString("THUMBNAIL_SIZES"))
	if err != nil {
		return nil, err
	}

	return &Settings{
		MariaDBDSN:           viper.GetString("MARIADB_DSN"),
		MaxOpenConns:         viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:         viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime:      time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		RedisAddr:            viper.GetString("REDIS_ADDR"),
		RedisPassword:        viper.GetString("REDIS_PASSWORD"),
		MinioEndpoint:        viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:       viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:       viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:          viper.GetBool("MINIO_USE_SSL"),
		Bucket:               viper.GetString("MINIO_BUCKET"),
		ServerPort:           viper.GetInt("SERVER_PORT"),
		ThumbnailSizes:       sizes,
		StuckThumbnailAfter:  time.Duration(viper.GetInt("STUCK_THUMBNAIL_AFTER")) * time.Second,
		GateRetryMaxAttempts: viper.GetInt("GATE_RETRY_MAX_ATTEMPTS"),
		GateRetryDelay:       time.Duration(viper.GetInt("GATE_RETRY_DELAY")) * time.Second,
		TaggerEndpoint:       viper.GetString("TAGGER_ENDPOINT"),
		TaggerAPIKey:         viper.GetString("TAGGER_API_KEY"),
	}, nil
}

// parseThumbnailSizes parses a "name:width,name:width" list.
func parseThumbnailSizes(raw string) (map[string]int, error) {
	sizes := make(map[string]int)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid THUMBNAIL_SIZES entry %q", pair)
		}
		width, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || width <= 0 {
			return nil, fmt.Errorf("invalid width in THUMBNAIL_SIZES entry %q", pair)
		}
		sizes[strings.TrimSpace(parts[0])] = width
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("THUMBNAIL_SIZES must define at least one size")
	}
	return sizes, nil
}

// SizeNames returns the configured size names, sorted by ascending width.
func (s *Settings) SizeNames() []string {
	names := make([]string, 0, len(s.ThumbnailSizes))
	for name := range s.ThumbnailSizes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.ThumbnailSizes[names[i]] < s.ThumbnailSizes[names[j]]
	})
	return names
}
