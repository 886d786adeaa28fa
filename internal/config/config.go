package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables,
// once at startup; nothing mutates it afterwards.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Plans  PlansConfig  `mapstructure:"plans"`
	GitHub GitHubConfig `mapstructure:"github"`
	S3     S3Config     `mapstructure:"s3"`
	Review ReviewConfig `mapstructure:"review"`
	CORS   CORSConfig   `mapstructure:"cors"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// StoreConfig selects and configures the submission queue backend.
// Driver "file" keeps the queue in a single JSON file; "mongo" uses a
// MongoDB collection instead.
type StoreConfig struct {
	Driver   string `mapstructure:"driver"`
	File     string `mapstructure:"file"`
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// PlansConfig selects the remote plan document store: "github", "s3", or
// "memory" (local development only).
type PlansConfig struct {
	Driver string `mapstructure:"driver"`
}

// GitHubConfig points at the versioned plan file in a GitHub repository.
type GitHubConfig struct {
	Token    string `mapstructure:"token"`
	Owner    string `mapstructure:"owner"`
	Repo     string `mapstructure:"repo"`
	Branch   string `mapstructure:"branch"`
	FilePath string `mapstructure:"file_path"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	ObjectKey       string `mapstructure:"object_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// ReviewConfig holds the shared coach secret gating the review endpoints.
// An empty key means the review surface is not configured and every gated
// request fails with a server error rather than an auth error.
type ReviewConfig struct {
	CoachKey string `mapstructure:"coach_key"`
}

type CORSConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Origins returns the configured allow-list, split on commas and trimmed.
// An empty list means every origin is allowed.
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Environment overrides, nested keys mapped with underscores:
	// github.file_path -> GITHUB_FILE_PATH, review.coach_key -> REVIEW_COACH_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8787")
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.file", "data/submissions.json")
	v.SetDefault("store.uri", "mongodb://localhost:27017")
	v.SetDefault("store.database", "training_plans")
	v.SetDefault("plans.driver", "github")
	v.SetDefault("github.owner", "akeath18")
	v.SetDefault("github.repo", "HPE-assets")
	v.SetDefault("github.branch", "main")
	v.SetDefault("github.file_path", "training-plan/data/training-plans.json")
	v.SetDefault("s3.object_key", "training-plan/data/training-plans.json")
	v.SetDefault("s3.use_ssl", true)

	// AutomaticEnv only resolves keys viper has seen. Every remaining struct
	// key gets an empty default so env-only deployments (no config.yaml)
	// still pick up the secrets.
	for _, key := range []string{
		"review.coach_key",
		"github.token",
		"cors.allowed_origins",
		"s3.endpoint",
		"s3.region",
		"s3.access_key_id",
		"s3.secret_access_key",
		"s3.bucket_name",
	} {
		v.SetDefault(key, "")
	}

	err = v.ReadInConfig()
	// The config file is optional; env vars and defaults are enough to run.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
