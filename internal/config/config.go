package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dverbeek/promptbooth/internal/catalog"
	"github.com/spf13/viper"
)

// Backend points at the hosted image-generation API. The key is either given
// directly or named as an SSM parameter path for deployed environments.
type Backend struct {
	APIRoot     string `mapstructure:"api_root"`
	APIKey      string `mapstructure:"api_key"`
	APIKeyParam string `mapstructure:"api_key_param"`
}

type Gallery struct {
	Bucket       string `mapstructure:"bucket"`
	Distribution string `mapstructure:"distribution"`
	LocalDir     string `mapstructure:"local_dir"`
}

type Reddit struct {
	ClientIDParam     string `mapstructure:"client_id_param"`
	ClientSecretParam string `mapstructure:"client_secret_param"`
	UsernameParam     string `mapstructure:"username_param"`
	PasswordParam     string `mapstructure:"password_param"`
}

type Showcase struct {
	Prompts      []string `mapstructure:"prompts"`
	PromptsParam string   `mapstructure:"prompts_param"`
	Enhance      bool     `mapstructure:"enhance"`
	Subreddit    string   `mapstructure:"subreddit"`
	Reddit       Reddit   `mapstructure:"reddit"`
}

// Config holds the application configuration. ParamStore picks where secret
// parameters are resolved: "env" for environment variables, "ssm" for AWS
// Parameter Store.
type Config struct {
	ListenAddress string            `mapstructure:"listen_address"`
	PublicURL     string            `mapstructure:"public_url"`
	Debug         bool              `mapstructure:"debug"`
	ParamStore    string            `mapstructure:"param_store"`
	Backend       Backend           `mapstructure:"backend"`
	Models        map[string]string `mapstructure:"models"`
	DefaultModel  string            `mapstructure:"default_model"`
	DefaultSteps  int               `mapstructure:"default_steps"`
	Gallery       Gallery           `mapstructure:"gallery"`
	Showcase      Showcase          `mapstructure:"showcase"`
}

// Load reads the optional YAML config file, applies PROMPTBOOTH_* environment
// overrides on top of the defaults, and validates the result. Model mappings
// from the file extend (and per-key override) the built-in catalog.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_address", "127.0.0.1:8080")
	v.SetDefault("public_url", "")
	v.SetDefault("debug", false)
	v.SetDefault("param_store", "env")
	v.SetDefault("backend.api_root", "https://api.siliconflow.cn/v1")
	// Empty defaults keep env-only keys visible to Unmarshal.
	v.SetDefault("backend.api_key", "")
	v.SetDefault("backend.api_key_param", "")
	v.SetDefault("gallery.bucket", "")
	v.SetDefault("gallery.distribution", "")
	v.SetDefault("showcase.enhance", false)
	v.SetDefault("showcase.subreddit", "")
	v.SetDefault("showcase.prompts_param", "")
	v.SetDefault("models", map[string]string{
		"flux-schnell": "black-forest-labs/FLUX.1-schnell",
		"flux-dev":     "black-forest-labs/FLUX.1-dev",
		"sd-3-medium":  "stabilityai/stable-diffusion-3-medium",
		"sd-xl":        "stabilityai/stable-diffusion-xl-base-1.0",
	})
	v.SetDefault("default_model", "flux-schnell")
	v.SetDefault("default_steps", catalog.MinSteps)
	v.SetDefault("gallery.local_dir", "gallery-data")

	v.SetEnvPrefix("PROMPTBOOTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Backend.APIRoot == "" {
		return nil, errors.New("backend.api_root is required")
	}
	if len(cfg.Models) == 0 {
		return nil, errors.New("at least one model mapping is required")
	}
	if _, ok := cfg.Models[cfg.DefaultModel]; !ok {
		return nil, fmt.Errorf("default_model %q is not in the model map", cfg.DefaultModel)
	}
	if cfg.DefaultSteps < catalog.MinSteps || cfg.DefaultSteps > catalog.MaxSteps {
		return nil, fmt.Errorf("default_steps must be between %d and %d", catalog.MinSteps, catalog.MaxSteps)
	}
	if cfg.ParamStore != "env" && cfg.ParamStore != "ssm" {
		return nil, fmt.Errorf("param_store must be env or ssm, got %q", cfg.ParamStore)
	}

	return &cfg, nil
}
