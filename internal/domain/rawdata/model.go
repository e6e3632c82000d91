package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Payload is one provider response kept verbatim so boards can be rebuilt
// while the provider is unreachable.
type Payload struct {
	Source      string
	SportKey    string
	FeedKey     string
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}

// HashPayload fingerprints a raw body for change detection.
func HashPayload(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
