package config

import (
	"net"
	"strconv"
	"strings"

	"github.com/deathlesz/md5/src/internal/format"
)

const (
	DefaultMaxInputBytes = 1 << 30
	DefaultListenAddr    = "127.0.0.1"
	DefaultListenPort    = 8089
	DefaultMaxBodyBytes  = 16 << 20
)

type Config struct {
	// General holds settings shared by every command.
	General GeneralConfig `toml:"general" json:"general"`
	// Server holds settings of the HTTP API ("serve" command).
	Server ServerConfig `toml:"server" json:"server"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// MaxInputBytes bounds a single message before padding (0 = unlimited, default: 1 GiB).
	MaxInputBytes uint64 `toml:"max_input_bytes" json:"max_input_bytes"`
	// StopAtNUL ends stdin input at the first NUL byte (default: true).
	StopAtNUL bool `toml:"stop_at_nul" json:"stop_at_nul"`
	// OutputTemplate formats each digest line. Available variables: {{digest}}, {{name}}, {{size}}.
	OutputTemplate string `toml:"output_template" json:"output_template" validate:"required,output_template"`
}

type ServerConfig struct {
	// ListenAddr is the API listen address (default: 127.0.0.1). IPv6 must be in square brackets.
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"ip_or_empty"`
	// ListenPort is the API listen port (default: 8089).
	ListenPort uint16 `toml:"listen_port" json:"listen_port" validate:"required,min=1"`
	// MaxBodyBytes bounds a request body hashed by the API (default: 16 MiB).
	MaxBodyBytes int64 `toml:"max_body_bytes" json:"max_body_bytes" validate:"min=1"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			MaxInputBytes:  DefaultMaxInputBytes,
			StopAtNUL:      true,
			OutputTemplate: format.DefaultTemplate,
		},
		Server: ServerConfig{
			ListenAddr:   DefaultListenAddr,
			ListenPort:   DefaultListenPort,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// BindAddress returns the host:port the API server listens on.
func (s ServerConfig) BindAddress() string {
	host := strings.Trim(s.ListenAddr, "[]")
	if host == "" {
		host = "0.0.0.0"
	}
	return net.JoinHostPort(host, strconv.Itoa(int(s.ListenPort)))
}

// GetAbsConfigFilePath returns the file the config was loaded from, empty for defaults.
func (c *Config) GetAbsConfigFilePath() string {
	return c._absConfigFilePath
}
