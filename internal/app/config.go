package app

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/bnema/layerkit/internal/adapters/out/telemetry"
	"github.com/bnema/layerkit/internal/domain"
	"github.com/bnema/layerkit/pkg/bytesize"
)

// DefaultBucket is used when no bucket is configured.
const DefaultBucket = "layerkit-artifacts"

// Config holds the application configuration.
type Config struct {
	Server struct {
		Port    int    `mapstructure:"port"`
		DataDir string `mapstructure:"data_dir"`
	} `mapstructure:"server"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   struct {
			Enabled    bool   `mapstructure:"enabled"`
			Path       string `mapstructure:"path"`
			MaxSize    int    `mapstructure:"max_size"`
			MaxBackups int    `mapstructure:"max_backups"`
			MaxAge     int    `mapstructure:"max_age"`
		} `mapstructure:"file"`
	} `mapstructure:"logging"`

	AWS struct {
		Region          string `mapstructure:"region"`
		Bucket          string `mapstructure:"bucket"`
		Endpoint        string `mapstructure:"endpoint"` // S3/Lambda compatible endpoint, e.g. LocalStack
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
	} `mapstructure:"aws"`

	Layer struct {
		CompatibleRuntimes      []string `mapstructure:"compatible_runtimes"`
		CompatibleArchitectures []string `mapstructure:"compatible_architectures"`
		ArchiveRoot             string   `mapstructure:"archive_root"`
		MaxUnzippedSize         string   `mapstructure:"max_unzipped_size"` // e.g. "250MiB"
	} `mapstructure:"layer"`

	Installer struct {
		Command string `mapstructure:"command"`
		Timeout string `mapstructure:"timeout"` // e.g. "5m"
	} `mapstructure:"installer"`

	Workspace struct {
		Dir  string `mapstructure:"dir"`
		Keep bool   `mapstructure:"keep"`
	} `mapstructure:"workspace"`

	History struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"history"`

	Telemetry telemetry.Config `mapstructure:"telemetry"`
}

// envBindings maps config keys to the environment variables that override
// them, in order of precedence.
var envBindings = map[string][]string{
	"aws.region":            {"LAYERKIT_AWS_REGION", "AWS_REGION", "AWS_DEFAULT_REGION"},
	"aws.bucket":            {"LAYERKIT_AWS_BUCKET", "LAYER_BUCKET", "BUCKET_NAME"},
	"aws.endpoint":          {"LAYERKIT_AWS_ENDPOINT", "AWS_ENDPOINT_URL"},
	"aws.access_key_id":     {"LAYERKIT_AWS_ACCESS_KEY_ID"},
	"aws.secret_access_key": {"LAYERKIT_AWS_SECRET_ACCESS_KEY"},
}

// initConfig loads configuration from file and environment.
func initConfig(configPath string) (*viper.Viper, Config, error) {
	v := viper.New()
	if err := loadConfig(v, configPath); err != nil {
		return nil, Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(cfg.Server.DataDir, "history.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, Config{}, err
	}

	return v, cfg, nil
}

// loadConfig loads configuration from file and sets defaults.
func loadConfig(v *viper.Viper, configPath string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.data_dir", DefaultDataDir())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.bucket", DefaultBucket)
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("aws.access_key_id", "")
	v.SetDefault("aws.secret_access_key", "")
	v.SetDefault("layer.compatible_runtimes", []string{"nodejs18.x", "nodejs20.x"})
	v.SetDefault("layer.compatible_architectures", []string{"x86_64"})
	v.SetDefault("layer.archive_root", "")
	v.SetDefault("layer.max_unzipped_size", "250MiB")
	v.SetDefault("installer.command", "npm")
	v.SetDefault("installer.timeout", "5m")
	v.SetDefault("workspace.dir", DefaultWorkspaceDir())
	v.SetDefault("workspace.keep", false)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "") // defaults to {data_dir}/history.db when empty
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.traces", true)
	v.SetDefault("telemetry.metrics", true)
	v.SetDefault("telemetry.trace_sample_rate", 1.0)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// Validate checks values that viper cannot type-check.
func (c Config) Validate() error {
	if c.AWS.Region == "" {
		return fmt.Errorf("%w: aws.region is required", domain.ErrInvalidConfig)
	}
	if c.AWS.Bucket == "" {
		return fmt.Errorf("%w: aws.bucket is required", domain.ErrInvalidConfig)
	}
	if len(c.Layer.CompatibleRuntimes) == 0 {
		return fmt.Errorf("%w: layer.compatible_runtimes must not be empty", domain.ErrInvalidConfig)
	}
	if (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		return fmt.Errorf("%w: aws.access_key_id and aws.secret_access_key must be set together", domain.ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level %q", domain.ErrInvalidConfig, c.Logging.Level)
	}
	if _, err := c.MaxUnzippedSize(); err != nil {
		return err
	}
	if _, err := c.InstallTimeout(); err != nil {
		return err
	}
	return nil
}

// MaxUnzippedSize returns the configured archive ceiling in bytes.
func (c Config) MaxUnzippedSize() (int64, error) {
	if c.Layer.MaxUnzippedSize == "" {
		return 0, nil
	}
	n, err := bytesize.Parse(c.Layer.MaxUnzippedSize)
	if err != nil {
		return 0, fmt.Errorf("%w: layer.max_unzipped_size: %v", domain.ErrInvalidConfig, err)
	}
	return n, nil
}

// InstallTimeout returns the per-spec installer timeout.
func (c Config) InstallTimeout() (time.Duration, error) {
	if c.Installer.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Installer.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: installer.timeout %q", domain.ErrInvalidConfig, c.Installer.Timeout)
	}
	return d, nil
}
