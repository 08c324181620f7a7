package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all client configuration
type Config struct {
	Nick       string   `yaml:"nick"`
	NickPass   string   `yaml:"nick_pass"`
	Alternate  string   `yaml:"alternate"`
	Server     string   `yaml:"server"`
	Port       int      `yaml:"port"`
	TLS        bool     `yaml:"tls"`
	ServerPass string   `yaml:"server_pass"`
	IRCName    string   `yaml:"irc_name"`
	Username   string   `yaml:"username"`
	Channels   []string `yaml:"channels"`
	DataDir    string   `yaml:"data_dir"`

	Observers Observers `yaml:"observers"`
}

// Observers switches the built-in observers on and off
type Observers struct {
	Log        bool   `yaml:"log"`
	Record     bool   `yaml:"record"`
	CTCP       bool   `yaml:"ctcp"`
	JoinInvite bool   `yaml:"join_on_invite"`
	Rejoin     bool   `yaml:"rejoin_on_kick"`
	Farewell   string `yaml:"farewell"`
	UserInfo   string `yaml:"user_info"`
	Finger     string `yaml:"finger"`
}

// Load reads and parses a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, applies defaults and validates it
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.Port == 0 {
		if cfg.TLS {
			cfg.Port = 6697
		} else {
			cfg.Port = 6667
		}
	}
	if cfg.Username == "" {
		cfg.Username = cfg.Nick
	}
	if cfg.IRCName == "" {
		cfg.IRCName = cfg.Nick
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	var errs []error
	if c.Server == "" {
		errs = append(errs, errors.New("server is required"))
	}
	if c.Nick == "" {
		errs = append(errs, errors.New("nick is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
