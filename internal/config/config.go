package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Library LibraryConfig
	Log     LogConfig
	UI      UIConfig
}

// LibraryConfig holds the sqlite library settings.
type LibraryConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds log sink settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	RecentLimit int    `mapstructure:"recent_limit"`
	PlaybackFPS int    `mapstructure:"playback_fps"`
	Keybindings string `mapstructure:"keybindings"`
}

// Load reads configuration from file and env. Env var overrides use
// prefix SPRITEPAD_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "spritepad")
	v.SetDefault("library.path", filepath.Join(dataDir, "library.db"))
	v.SetDefault("log.path", filepath.Join(dataDir, "spritepad.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.recent_limit", 10)
	v.SetDefault("ui.playback_fps", 30)
	v.SetDefault("ui.keybindings", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SPRITEPAD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "spritepad"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SPRITEPAD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
