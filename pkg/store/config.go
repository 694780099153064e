package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the on-disk store.
type Config interface {
	BasePath() string
}

// LoadConfig discovers the store path from a .tempo config file or the
// TEMPO_PATH environment variable, defaulting to ~/.tempo.db.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.tempo.db")
	viper.SetConfigName(".tempo") // .yaml is implicit
	viper.SetEnvPrefix("TEMPO")
	viper.AutomaticEnv()

	if override := os.Getenv("TEMPO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
