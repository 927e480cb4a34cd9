package wiki

import "time"

// Config holds the file-based configuration for the service.
// These are bootstrap settings loaded from config.yaml that are needed
// before the database connection is established.
type Config struct {
	DatabaseFile    string            `yaml:"dbfile"`
	Host            string            `yaml:"host"`
	BaseURL         string            `yaml:"base_url"`
	ArticlePath     string            `yaml:"article_path"`
	LogFormat       string            `yaml:"log_format"`
	LogLevel        string            `yaml:"log_level"`
	UseRichEditor   bool              `yaml:"use_rich_editor"`
	ProjectName     string            `yaml:"project_name"`
	StoreTimeout    time.Duration     `yaml:"store_timeout"`
	FormTokenMaxAge time.Duration     `yaml:"form_token_max_age"`
	Namespaces      []NamespaceConfig `yaml:"namespaces"`
}

// NamespaceConfig describes an extra namespace, or extra aliases for a
// built-in one when ID matches an existing namespace.
type NamespaceConfig struct {
	ID            int      `yaml:"id" mapstructure:"id"`
	Name          string   `yaml:"name" mapstructure:"name"`
	Aliases       []string `yaml:"aliases" mapstructure:"aliases"`
	CaseSensitive bool     `yaml:"case_sensitive" mapstructure:"case_sensitive"`
}
