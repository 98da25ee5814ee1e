package config

import (
	"fmt"
	"sync"

	"github.com/deathlesz/md5/src/internal/digest"
)

// ConfigHasher calculates the MD5 hash of the effective configuration.
// The hash is reported by the API so clients can tell which settings a
// running server uses. It is computed once and cached.
type ConfigHasher struct {
	config *Config
	engine *digest.Engine

	hash string
	err  error
	once sync.Once

	mu sync.RWMutex
}

// NewConfigHasher creates a new config hasher
func NewConfigHasher(config *Config) *ConfigHasher {
	return &ConfigHasher{
		config: config,
		engine: digest.NewEngine(0),
	}
}

// GetConfigHash returns the cached hash of the configuration.
func (h *ConfigHasher) GetConfigHash() (string, error) {
	h.once.Do(func() {
		hash, err := h.CalculateHash(h.config)
		h.mu.Lock()
		h.hash, h.err = hash, err
		h.mu.Unlock()
	})

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.hash, h.err
}

// CalculateHash calculates the hash of the serialized form of config.
func (h *ConfigHasher) CalculateHash(config *Config) (string, error) {
	serialized, err := config.SerializeConfig()
	if err != nil {
		return "", fmt.Errorf("failed to serialize config: %w", err)
	}
	return h.engine.SumHex(serialized.Bytes())
}
