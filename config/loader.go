package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/restkit/restclient"
)

const defaultEnvPrefix = "RESTKIT"

// FileSystem abstracts file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // explicit config file path (optional)
	EnvFile    string // explicit .env file path (optional)
	EnvPrefix  string // environment variable prefix, defaults to RESTKIT
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// Load reads the configuration for the named upstream client: YAML file
// first, then environment overrides, then defaults and validation.
func Load(name string, opts ...LoaderOption) (restclient.Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	if lc.EnvPrefix == "" {
		lc.EnvPrefix = defaultEnvPrefix
	}

	var cfg restclient.Config

	if lc.EnvFile != "" && lc.FileSystem.Exists(lc.EnvFile) {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			return cfg, fmt.Errorf("config: load env file %s: %w", lc.EnvFile, err)
		}
	}

	v := viper.New()

	configFile := lc.ConfigFile
	if configFile == "" {
		configFile = findConfigFile(lc.FileSystem)
	}
	if configFile != "" && lc.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	key := "clients." + name
	if err := v.UnmarshalKey(key, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", key, err)
	}

	if err := applyEnvOverrides(&cfg, lc.EnvPrefix, name); err != nil {
		return cfg, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// findConfigFile searches for config.yml in standard locations.
func findConfigFile(fs FileSystem) string {
	searchPaths := []string{
		"./config/config.yml",
		"../config/config.yml",
		"./config.yml",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// applyEnvOverrides maps RESTKIT_CLIENTS_<NAME>_<FIELD> environment
// variables onto the decoded config. Overrides are applied per field so an
// env var never shadows sibling file values.
func applyEnvOverrides(cfg *restclient.Config, prefix, name string) error {
	envBase := prefix + "_CLIENTS_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_"

	lookup := func(field string) (string, bool) {
		return os.LookupEnv(envBase + strings.ToUpper(strings.ReplaceAll(field, ".", "_")))
	}

	if val, ok := lookup("base_url"); ok {
		cfg.BaseURL = val
	}
	if err := overrideDuration(lookup, "timeout", &cfg.Timeout); err != nil {
		return err
	}
	if val, ok := lookup("max_retries"); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("config: %sMAX_RETRIES: %w", envBase, err)
		}
		cfg.MaxRetries = n
	}
	if err := overrideDuration(lookup, "backoff_base", &cfg.BackoffBase); err != nil {
		return err
	}
	if err := overrideDuration(lookup, "backoff_cap", &cfg.BackoffCap); err != nil {
		return err
	}

	tls := func() *restclient.TLSConfig {
		if cfg.TLS == nil {
			cfg.TLS = &restclient.TLSConfig{}
		}
		return cfg.TLS
	}
	if val, ok := lookup("tls.ca_file"); ok {
		tls().CAFile = val
	}
	if val, ok := lookup("tls.cert_file"); ok {
		tls().CertFile = val
	}
	if val, ok := lookup("tls.key_file"); ok {
		tls().KeyFile = val
	}
	if val, ok := lookup("tls.server_name"); ok {
		tls().ServerName = val
	}
	if val, ok := lookup("tls.skip_verify"); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("config: %sTLS_SKIP_VERIFY: %w", envBase, err)
		}
		tls().SkipVerify = b
	}
	return nil
}

func overrideDuration(lookup func(string) (string, bool), field string, target *time.Duration) error {
	val, ok := lookup(field)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("config: override %s: %w", field, err)
	}
	*target = d
	return nil
}
