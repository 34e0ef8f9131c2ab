package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyGitHubAPIURL    = "github.api_url"
	KeyGitHubUserAgent = "github.user_agent"
	KeyGitHubToken     = "github.token"
	KeyFetchPageSize   = "fetch.page_size"
	KeyFetchBranch     = "fetch.default_branch"
	KeySaveDebounceMS  = "save.debounce_ms"
	KeyExportFormat    = "export.format"
)

type Config struct {
	GitHub GitHubConfig `mapstructure:"github" validate:"required"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	Save   SaveConfig   `mapstructure:"save"`
	Export ExportConfig `mapstructure:"export"`
}

type GitHubConfig struct {
	APIURL    string `mapstructure:"api_url" validate:"required,url"`
	UserAgent string `mapstructure:"user_agent" validate:"required"`
	Token     string `mapstructure:"token"`
}

type FetchConfig struct {
	PageSize      int    `mapstructure:"page_size" validate:"min=1,max=100"`
	DefaultBranch string `mapstructure:"default_branch"`
}

type SaveConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" validate:"min=0"`
}

type ExportConfig struct {
	Format string `mapstructure:"format"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# gitjrnl configuration
github:
  api_url: "https://api.github.com"
  user_agent: "gitjrnl"
  # token: "ghp_..."

fetch:
  page_size: 100
  default_branch: "main"

save:
  debounce_ms: 500

export:
  format: "csv"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateExportFormat(cfg.Export.Format); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	_ = v.BindEnv(KeyGitHubToken, "GITJRNL_GITHUB_TOKEN", "GITHUB_TOKEN")
	v.SetDefault(KeyGitHubAPIURL, "https://api.github.com")
	v.SetDefault(KeyGitHubUserAgent, "gitjrnl")
	v.SetDefault(KeyFetchPageSize, 100)
	v.SetDefault(KeyFetchBranch, "main")
	v.SetDefault(KeySaveDebounceMS, 500)
	v.SetDefault(KeyExportFormat, "csv")
}

func validateExportFormat(format string) error {
	valid := map[string]bool{
		"csv":    true,
		"xlsx":   true,
		"sqlite": true,
	}
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return nil
	}
	if !valid[f] {
		return fmt.Errorf("validation failed: export.format %q is not supported (valid: csv, xlsx, sqlite)", format)
	}
	return nil
}
