package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
)

type Config struct {
	Promotion PromotionConfig `mapstructure:"promotion"`
}

type PromotionConfig struct {
	HandlerRole       string            `mapstructure:"handler_role"`
	StagingRepository string            `mapstructure:"staging_repository"`
	Source            SourceConfig      `mapstructure:"source"`
	Destination       DestinationConfig `mapstructure:"destination"`
}

// SourceConfig selects exactly one source variant; the others stay nil.
type SourceConfig struct {
	Directory *DirectorySourceConfig `mapstructure:"directory"`
	Ecr       *EcrSourceConfig       `mapstructure:"ecr"`
	Asset     *AssetSourceConfig     `mapstructure:"asset"`
}

type DirectorySourceConfig struct {
	Path     string   `mapstructure:"path"`
	Excludes []string `mapstructure:"excludes"`
}

type EcrSourceConfig struct {
	Repository string `mapstructure:"repository"`
	Tag        string `mapstructure:"tag"`
}

type AssetSourceConfig struct {
	ImageURI   string `mapstructure:"image_uri"`
	Repository string `mapstructure:"repository"`
}

type DestinationConfig struct {
	Ecr *EcrDestinationConfig `mapstructure:"ecr"`
}

type EcrDestinationConfig struct {
	Repository string `mapstructure:"repository"`
	Tag        string `mapstructure:"tag"`
}

func newConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func NewConfigFromPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return newConfigFromViper(v)
}

func NewConfigFromReader(reader io.Reader) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("reading config from reader: %w", err)
	}

	return newConfigFromViper(v)
}
