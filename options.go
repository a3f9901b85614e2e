package solabi

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Hasher derives the 32-byte digest used for signature fingerprints and for
// dynamic indexed event topics.
type Hasher func(data []byte) common.Hash

// Option configures entries and ABIs at construction time.
type Option func(*config)

// config holds construction-time settings shared by all entries of an ABI.
type config struct {
	hasher Hasher
}

// defaultConfig returns the default configuration (Keccak-256 hashing).
func defaultConfig() *config {
	return &config{
		hasher: Keccak256,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Keccak256 is the default Hasher.
func Keccak256(data []byte) common.Hash {
	return crypto.Keccak256Hash(data)
}

// WithHasher replaces the hash function used for fingerprints and topics.
// A nil hasher keeps the default.
func WithHasher(h Hasher) Option {
	return func(c *config) {
		if h != nil {
			c.hasher = h
		}
	}
}
