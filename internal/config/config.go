package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/danielledeleo/createpage/internal/logger"
	"github.com/danielledeleo/createpage/wiki"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const configFilename = "config.yaml"

// EnvPrefix prefixes environment variables that override config keys,
// e.g. CREATEPAGE_USE_RICH_EDITOR=true.
const EnvPrefix = "CREATEPAGE"

// SetupConfig loads file-based configuration needed for bootstrap and
// initializes the logger. Runtime configuration (cookie secret, editor mode)
// is loaded from the database after the database connection is established.
func SetupConfig() *wiki.Config {
	config, err := Load(configFilename, true)
	if err != nil {
		slog.Error("failed to read config", "file", configFilename, "error", err)
		os.Exit(1)
	}

	logger.InitLogger(
		logger.ParseLogFormat(config.LogFormat),
		logger.ParseLogLevel(config.LogLevel),
	)

	return config
}

// Load reads filename, applying defaults and environment overrides. When the
// file does not exist and writeDefaults is true, the resulting configuration
// is written to filename.
func Load(filename string, writeDefaults bool) (*wiki.Config, error) {
	v := viper.New()
	v.SetDefault("dbfile", "createpage.db")
	v.SetDefault("host", "0.0.0.0:8080")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("article_path", wiki.DefaultArticlePath)
	v.SetDefault("log_format", "pretty") // pretty, json, or text
	v.SetDefault("log_level", "info")    // debug, info, warn, error
	v.SetDefault("use_rich_editor", false)
	v.SetDefault("project_name", "Project")
	v.SetDefault("store_timeout", "5s")
	v.SetDefault("form_token_max_age", "12h")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(filename)
	err := v.ReadInConfig()

	createDefaultConfigFile := false
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
		createDefaultConfigFile = writeDefaults
	}

	config := &wiki.Config{
		DatabaseFile:    v.GetString("dbfile"),
		Host:            v.GetString("host"),
		BaseURL:         v.GetString("base_url"),
		ArticlePath:     v.GetString("article_path"),
		LogFormat:       v.GetString("log_format"),
		LogLevel:        v.GetString("log_level"),
		UseRichEditor:   v.GetBool("use_rich_editor"),
		ProjectName:     v.GetString("project_name"),
		StoreTimeout:    v.GetDuration("store_timeout"),
		FormTokenMaxAge: v.GetDuration("form_token_max_age"),
	}
	if err := v.UnmarshalKey("namespaces", &config.Namespaces); err != nil {
		return nil, fmt.Errorf("namespaces: %w", err)
	}

	if config.StoreTimeout < 0 {
		return nil, fmt.Errorf("store_timeout must not be negative")
	}
	if config.FormTokenMaxAge <= 0 {
		return nil, fmt.Errorf("form_token_max_age must be positive")
	}

	if createDefaultConfigFile {
		slog.Info("config not found, writing defaults", "file", filename)
		if err := writeConfig(filename, config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func writeConfig(filename string, config *wiki.Config) error {
	conf, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer conf.Close()

	if err := yaml.NewEncoder(conf).Encode(config); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
