package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names accepted by the `backend` config key.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config interface {
	BasePath() string
	Backend() string
	Locale() string
}

// LoadConfig reads .phoneshell from PHONESHELL_CONFIG_PATH or the working
// directory, overlaid by PHONESHELL_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.phoneshell")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("locale", "en")
	v.SetConfigName(".phoneshell") // .yaml is implicit
	v.SetEnvPrefix("PHONESHELL")
	v.AutomaticEnv()

	if override := os.Getenv("PHONESHELL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return NewConfig(v.GetString("path"), v.GetString("backend"), v.GetString("locale"))
}

// NewConfig builds a Config from explicit values, expanding ~ in path.
func NewConfig(path, backend, locale string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("store: expand %q: %w", path, err)
	}
	switch backend {
	case "":
		backend = BackendDiskv
	case BackendDiskv, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if locale == "" {
		locale = "en"
	}
	return &fileConfig{Path: expanded, Store: backend, Lang: locale}, nil
}

type fileConfig struct {
	Path  string `json:"path"`
	Store string `json:"backend"`
	Lang  string `json:"locale"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Backend() string {
	return f.Store
}

func (f *fileConfig) Locale() string {
	return f.Lang
}
