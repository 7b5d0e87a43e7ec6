package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

// Config is the process-wide configuration, read once at startup from an
// optional YAML file, RADAR_-prefixed environment variables, and the
// GITHUB_TOKEN variable for the provider token.
type Config struct {
	ListenAddress string `mapstructure:"listenAddress"`
	EnableMetrics bool   `mapstructure:"enableMetrics"`
	// DatasetPath optionally overrides the embedded curated dataset.
	DatasetPath string         `mapstructure:"datasetPath"`
	Provider    ProviderConfig `mapstructure:"provider"`
}

type ProviderConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	// Token is usually supplied via GITHUB_TOKEN rather than the file.
	Token string `mapstructure:"token"`
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("listenAddress", domain.DefaultListenAddress)
	v.SetDefault("enableMetrics", true)
	v.SetDefault("datasetPath", "")
	v.SetDefault("provider.baseUrl", domain.DefaultProviderBaseURL)
	v.SetDefault("provider.token", "")
	v.SetEnvPrefix("RADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads configuration from path. An empty path or a missing file
// yields the defaults; a present but invalid file is an error.
func LoadConfig(path string) (Config, error) {
	v := newConfigViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// GITHUB_TOKEN wins over the file so tokens stay out of config files.
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		cfg.Provider.Token = token
	}
	return cfg, nil
}
