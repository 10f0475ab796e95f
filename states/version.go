package states

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ConfigVersion returns a stable identifier for a switch configuration.
// A non-empty c.Version wins; otherwise the identifier is derived from the
// canonical JSON encoding, so two structurally identical configs share an
// identifier and any edit produces a new one.
func ConfigVersion(c Config) string {
	if c.Version != "" {
		return c.Version
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "invalid"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
