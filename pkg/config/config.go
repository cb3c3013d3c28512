package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/telekom/job-container-naming/pkg/naming"
)

const (
	VersionV1 = "v1"

	DefaultListenAddress = "0.0.0.0:8080"
	DefaultOutputFormat  = "table"
)

type Config struct {
	Version  string   `yaml:"version"`
	Naming   Naming   `yaml:"naming,omitempty"`
	Server   Server   `yaml:"server,omitempty"`
	Settings Settings `yaml:"settings,omitempty"`
}

type Naming struct {
	// Algorithm selects the digest for hashed names. Changing it renames
	// every container whose job id needs hashing.
	Algorithm string `yaml:"algorithm,omitempty"`
}

type Server struct {
	ListenAddress   string    `yaml:"listen-address,omitempty"`
	TLSCertFile     string    `yaml:"tls-cert-file,omitempty"`
	TLSKeyFile      string    `yaml:"tls-key-file,omitempty"`
	AllowedOrigins  []string  `yaml:"allowed-origins,omitempty"`
	ShutdownTimeout string    `yaml:"shutdown-timeout,omitempty"`
	RateLimit       RateLimit `yaml:"rate-limit,omitempty"`
}

// RateLimit limits API requests per client IP.
type RateLimit struct {
	Disabled          bool    `yaml:"disabled,omitempty"`
	RequestsPerSecond float64 `yaml:"requests-per-second,omitempty"`
	Burst             int     `yaml:"burst,omitempty"`
}

type Settings struct {
	OutputFormat string `yaml:"output-format,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Version: VersionV1,
		Naming: Naming{
			Algorithm: string(naming.DefaultAlgorithm),
		},
		Server: Server{
			ListenAddress:   DefaultListenAddress,
			ShutdownTimeout: "10s",
			RateLimit: RateLimit{
				RequestsPerSecond: 20,
				Burst:             50,
			},
		},
		Settings: Settings{
			OutputFormat: DefaultOutputFormat,
		},
	}
}

// Load reads the config file at path and fills unset fields from
// DefaultConfig. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	cfg := DefaultConfig()
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	var loaded Config
	if err := yaml.Unmarshal(content, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	loaded.applyDefaults(cfg)
	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &loaded, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) applyDefaults(def Config) {
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Naming.Algorithm == "" {
		c.Naming.Algorithm = def.Naming.Algorithm
	}
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = def.Server.ListenAddress
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Server.RateLimit.RequestsPerSecond == 0 {
		c.Server.RateLimit.RequestsPerSecond = def.Server.RateLimit.RequestsPerSecond
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = def.Server.RateLimit.Burst
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = def.Settings.OutputFormat
	}
}

func (c *Config) Validate() error {
	if c.Version != VersionV1 {
		return fmt.Errorf("unsupported config version %q", c.Version)
	}
	if _, err := naming.ParseAlgorithm(c.Naming.Algorithm); err != nil {
		return err
	}
	if strings.TrimSpace(c.Server.ListenAddress) == "" {
		return errors.New("server listen-address cannot be empty")
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 || c.Server.RateLimit.Burst < 0 {
		return errors.New("server rate-limit values cannot be negative")
	}
	if (c.Server.TLSCertFile == "") != (c.Server.TLSKeyFile == "") {
		return errors.New("server tls-cert-file and tls-key-file must be set together")
	}
	return nil
}

// Deriver builds the container name deriver for the configured algorithm.
func (c *Config) Deriver() (*naming.Deriver, naming.Algorithm, error) {
	alg, err := naming.ParseAlgorithm(c.Naming.Algorithm)
	if err != nil {
		return nil, "", err
	}
	d, err := naming.NewDeriverForAlgorithm(alg)
	if err != nil {
		return nil, "", err
	}
	return d, alg, nil
}
