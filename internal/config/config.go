package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Users struct {
		Backend string // "file" or "sqlite"
		Path    string // JSON store location for the file backend
		DBPath  string // database location for the sqlite backend
	}
	Models struct {
		Dir       string
		Bucket    string // when set, artifacts are fetched from S3 into Dir
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	News struct {
		APIKey          string
		Timeout         time.Duration
		CacheTTL        time.Duration
		RefreshInterval time.Duration
		RefreshEnabled  bool
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
	}
	Kafka struct {
		Brokers []string
		Topic   string
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("FORESTGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("users.backend", "file")
	v.SetDefault("users.path", "data/users.json")
	v.SetDefault("users.dbpath", "data/forestguard.db")
	v.SetDefault("models.dir", "models")
	v.SetDefault("models.bucket", "")
	v.SetDefault("models.keyprefix", "forestguard-models")
	v.SetDefault("models.region", "us-east-1")
	v.SetDefault("models.endpoint", "")
	v.SetDefault("news.apikey", "")
	v.SetDefault("news.timeout", "10s")
	v.SetDefault("news.cachettl", "10m")
	v.SetDefault("news.refreshinterval", "15m")
	v.SetDefault("news.refreshenabled", true)
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 24*60)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "forestguard-predictions")
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.Users.Backend {
	case "file", "sqlite":
	default:
		return Config{}, fmt.Errorf("unknown users backend %q", cfg.Users.Backend)
	}

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
