// Package config loads SDK configuration with viper: defaults first, an
// optional YAML file on top, and MAQRAA_-prefixed environment variables
// overriding both.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MAQRAA"

// Config is everything the SDK and the CLI need to talk to the admin API.
type Config struct {
	// BaseURL of the admin REST API, protocol and host, no trailing slash.
	BaseURL string `mapstructure:"base_url"`
	// TokenPath is the file the login flow writes the bearer token to.
	TokenPath string `mapstructure:"token_path"`
	// VideoFeedURL is the websocket endpoint of the video host's event
	// feed. Empty disables the feed.
	VideoFeedURL string `mapstructure:"video_feed_url"`
	// HTTPTimeout bounds every API request.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`
	// LogPath appends logs to a file when set; empty logs to stderr.
	LogPath string `mapstructure:"log_path"`
}

// Load reads configuration. configFile may be empty, in which case only
// defaults and environment variables apply; a named file that does not
// exist is an error.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetDefault("base_url", "http://localhost:4000")
	v.SetDefault("token_path", ".maqraa-token")
	v.SetDefault("video_feed_url", "")
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_path", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
