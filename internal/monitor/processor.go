package monitor

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/rs/zerolog"
)

// ContentProcessor computes digests over fetched content. The digest is used
// for equality comparison only; there is no tamper-resistance requirement.
type ContentProcessor struct {
	logger zerolog.Logger
}

// NewContentProcessor creates a new ContentProcessor.
func NewContentProcessor(logger zerolog.Logger) *ContentProcessor {
	return &ContentProcessor{
		logger: logger.With().Str("component", "ContentProcessor").Logger(),
	}
}

// Digest returns the SHA-256 digest of the exact body bytes as a fixed-length
// lowercase hex string.
func (cp *ContentProcessor) Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
