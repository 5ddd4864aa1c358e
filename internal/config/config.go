package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Admin    AdminConfig    `mapstructure:"admin"`
	UI       UIConfig       `mapstructure:"ui"`
}

// StoreConfig holds the catalog and cart file paths.
type StoreConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
	CartPath    string `mapstructure:"cart_path"`
}

// DatabaseConfig holds sqlite settings for the sales-history ledger.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AdminConfig gates the register-product flow. The password here is a
// plain-text fallback; the secrets store takes precedence when populated.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// Load reads configuration from file and env. Env var overrides use prefix JASKSHOP_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "jaskshop")

	// default values
	v.SetDefault("store.catalog_path", filepath.Join(dataDir, "catalog.json"))
	v.SetDefault("store.cart_path", filepath.Join(dataDir, "cart.json"))
	v.SetDefault("database.path", filepath.Join(dataDir, "jaskshop.db"))
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("ui.currency_symbol", "₹")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JASKSHOP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jaskshop"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKSHOP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Admin password lands in plain text here; move it to the secrets
// store for anything beyond the default install.
func Save(cfg Config) error {
	path := os.Getenv("JASKSHOP_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "jaskshop", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.catalog_path", cfg.Store.CatalogPath)
	v.Set("store.cart_path", cfg.Store.CartPath)
	v.Set("database.path", cfg.Database.Path)
	v.Set("admin.username", cfg.Admin.Username)
	v.Set("admin.password", cfg.Admin.Password)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
