package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the application.
type Config struct {
	Output    Output    `mapstructure:"output"`
	Fonts     Fonts     `mapstructure:"fonts"`
	Renderer  Renderer  `mapstructure:"renderer"`
	Templates Templates `mapstructure:"templates"`
	Retry     Retry     `mapstructure:"retry"`
	Storage   Storage   `mapstructure:"storage"`
}

// Output holds the default export settings.
type Output struct {
	Dir     string `mapstructure:"dir"`
	Format  string `mapstructure:"format"`  // JPEG or PNG
	Quality int    `mapstructure:"quality"` // JPEG only
	Prefix  string `mapstructure:"prefix"`
	Suffix  string `mapstructure:"suffix"`
}

// Fonts holds the font lookup configuration.
type Fonts struct {
	Dirs        []string `mapstructure:"dirs"`         // probed before system locations
	CJKFamilies []string `mapstructure:"cjk_families"` // fallback order for CJK content
}

// Renderer holds tunables of the watermark renderer.
type Renderer struct {
	// ItalicShear is the shear factor for simulated italics on fonts
	// without an italic cut. It does not scale with font size.
	ItalicShear float64 `mapstructure:"italic_shear"`
}

// Templates holds the template store location.
type Templates struct {
	Dir string `mapstructure:"dir"`
}

// Retry defines the retry policy for output saves.
type Retry struct {
	Attempts int           `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
	Backoff  float64       `mapstructure:"backoff"`
}

// Storage holds an optional S3-compatible export target. When Endpoint is
// empty, outputs go to the local filesystem.
type Storage struct {
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	BucketName string `mapstructure:"bucket_name"`
	UseSSL     bool   `mapstructure:"use_ssl"`
}

func setDefaults() {
	viper.SetDefault("output.format", "JPEG")
	viper.SetDefault("output.quality", 95)
	viper.SetDefault("output.suffix", "_watermarked")
	viper.SetDefault("renderer.italic_shear", 0.3)
	viper.SetDefault("templates.dir", "templates")
	viper.SetDefault("retry.attempts", 3)
	viper.SetDefault("retry.delay", 100*time.Millisecond)
	viper.SetDefault("retry.backoff", 2.0)
}

// MustLoad loads the configuration from the given directory. A missing
// config file falls back to defaults; an unreadable or malformed one panics.
func MustLoad(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			zlog.Logger.Panic().Err(err).Msg("failed to read config")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to unmarshal config")
	}

	return &cfg
}
