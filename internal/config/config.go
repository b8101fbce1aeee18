// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads Librarian's settings from librarian.yaml, the
// LIBRARIAN_* environment and command line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/librarian/internal/console"
)

// StorageTypes lists the accepted values of storage.type.
var StorageTypes = []string{"json", "sqlite", "postgres", "mysql"}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Storage  Storage `mapstructure:"storage" yaml:"storage"`
	Language string  `mapstructure:"language" yaml:"language"`
	Frame    Frame   `mapstructure:"frame" yaml:"frame"`
	Table    Table   `mapstructure:"table" yaml:"table"`
	LogFile  string  `mapstructure:"log_file" yaml:"log_file,omitempty"`
}

type Storage struct {
	// Type selects the backend: json files or one of the SQL databases.
	Type string `mapstructure:"type" yaml:"type"`
	// Dsn is the data source name for the SQL backends.
	Dsn          string `mapstructure:"dsn" yaml:"dsn,omitempty"`
	BooksFile    string `mapstructure:"books_file" yaml:"books_file"`
	AccountsFile string `mapstructure:"accounts_file" yaml:"accounts_file"`
}

// Frame holds the border characters. Only the first character of each value
// is used.
type Frame struct {
	Vertical   string `mapstructure:"vertical" yaml:"vertical"`
	Horizontal string `mapstructure:"horizontal" yaml:"horizontal"`
}

type Table struct {
	MaxCellWidth int `mapstructure:"max_cell_width" yaml:"max_cell_width"`
}

// Defaults returns the value of every key when nothing else sets it.
func Defaults() map[string]any {
	return map[string]any{
		"storage.type":          "json",
		"storage.dsn":           "",
		"storage.books_file":    "books.json",
		"storage.accounts_file": "accounts.json",
		"language":              "ru",
		"frame.vertical":        "|",
		"frame.horizontal":      "-",
		"table.max_cell_width":  console.DefaultMaxCellWidth,
		"log_file":              "",
	}
}

// Default returns a Config holding Defaults.
func Default() Config {
	return Config{
		Storage:  Storage{Type: "json", BooksFile: "books.json", AccountsFile: "accounts.json"},
		Language: "ru",
		Frame:    Frame{Vertical: "|", Horizontal: "-"},
		Table:    Table{MaxCellWidth: console.DefaultMaxCellWidth},
	}
}

// GetConfigPath returns the full path of the user or system wide
// configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Librarian")
		default:
			configDir = "/etc/librarian"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "librarian")
	}
	return filepath.Join(configDir, "librarian.yaml"), nil
}

// LoadConfig merges defaults, the first librarian.yaml found (or explicitPath
// when given), LIBRARIAN_* environment variables and the flags of cmd into a
// T. A missing configuration file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("librarian")
	v.SetConfigType("yaml")
	if explicitPath != nil && *explicitPath != "" {
		v.SetConfigFile(*explicitPath)
	}
	if p, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	if p, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("librarian")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(false)
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// Load is LoadConfig for Config with Defaults, followed by Validate.
func Load(cmd *cobra.Command, explicitPath *string) (Config, error) {
	c, err := LoadConfig[Config](cmd, Defaults(), explicitPath)
	if err != nil {
		return c, err
	}
	return c, c.Validate()
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if !slices.Contains(StorageTypes, c.Storage.Type) {
		return fmt.Errorf("%w: storage.type %q (want one of %s)", ErrInvalidConfig, c.Storage.Type, strings.Join(StorageTypes, ", "))
	}
	if c.Storage.Type == "json" && (c.Storage.BooksFile == "" || c.Storage.AccountsFile == "") {
		return fmt.Errorf("%w: storage.books_file and storage.accounts_file are required for json storage", ErrInvalidConfig)
	}
	if c.Storage.Type != "json" && c.Storage.Type != "sqlite" && c.Storage.Dsn == "" {
		return fmt.Errorf("%w: storage.dsn is required for %s", ErrInvalidConfig, c.Storage.Type)
	}
	if c.Table.MaxCellWidth < 0 {
		return fmt.Errorf("%w: table.max_cell_width must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ConsoleConfig converts the rendering settings for the console engine.
func (c Config) ConsoleConfig() console.Config {
	cc := console.DefaultConfig()
	if r, _ := utf8.DecodeRuneInString(c.Frame.Vertical); r != utf8.RuneError {
		cc.Borders.Vertical = r
	}
	if r, _ := utf8.DecodeRuneInString(c.Frame.Horizontal); r != utf8.RuneError {
		cc.Borders.Horizontal = r
	}
	if c.Table.MaxCellWidth > 0 {
		cc.MaxCellWidth = c.Table.MaxCellWidth
	}
	return cc
}

// WriteConfigFile stores c as YAML at the user (or system) config path and
// returns that path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigFileTo(c, path)
}

// WriteConfigFileTo stores c as YAML at path, creating its directory.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", dir, err)
	}
	// 0600: the dsn may carry a database password.
	return os.WriteFile(path, data, 0o600)
}
