package store

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config interface {
	BasePath() string
}

// LoadConfig resolves the replica base path from .opsdeck config files and
// OPSDECK_* environment variables.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.opsdeck.db")
	viper.SetConfigName(".opsdeck") // .yaml is implicit
	viper.SetEnvPrefix("OPSDECK")
	viper.AutomaticEnv()

	if override := os.Getenv("OPSDECK_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
