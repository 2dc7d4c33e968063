package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved configuration shared by the CLI commands.
type Config interface {
	// BasePath is the root directory of the trace store.
	BasePath() string
	// LayoutPath is the layout file to build, empty for the default chain.
	LayoutPath() string
	// Detach is the default DetachFromHost for teardowns.
	Detach() bool
	// File is the config file that was read, if any.
	File() string
}

// LoadConfig reads the .subviews config file from SUBVIEWS_CONFIG_PATH or
// the working directory. SUBVIEWS_* environment variables override it.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.subviews.db")
	viper.SetDefault("layout", "")
	viper.SetDefault("detach", true)
	viper.SetConfigName(".subviews") // .yaml is implicit
	viper.SetEnvPrefix("SUBVIEWS")
	viper.AutomaticEnv()

	if override := os.Getenv("SUBVIEWS_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expanding path: %w", err)
	}
	layout, err := homedir.Expand(viper.GetString("layout"))
	if err != nil {
		return nil, fmt.Errorf("store: expanding layout: %w", err)
	}

	return &fileConfig{
		Path:          path,
		Layout:        layout,
		DetachDefault: viper.GetBool("detach"),
		ConfigFile:    viper.ConfigFileUsed(),
	}, nil
}

type fileConfig struct {
	Path          string `json:"path"`
	Layout        string `json:"layout,omitempty"`
	DetachDefault bool   `json:"detach"`
	ConfigFile    string `json:"file,omitempty"`
}

func (f *fileConfig) BasePath() string   { return f.Path }
func (f *fileConfig) LayoutPath() string { return f.Layout }
func (f *fileConfig) Detach() bool       { return f.DetachDefault }
func (f *fileConfig) File() string       { return f.ConfigFile }
