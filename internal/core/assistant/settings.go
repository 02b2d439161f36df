// Package assistant routes a query through the generative model when one is
// configured and falls back to the heuristic answer engine otherwise.
package assistant

import "time"

// DefaultTimeout bounds a single model call when Settings.Timeout is unset.
const DefaultTimeout = 3000 * time.Millisecond

// placeholderKey is the sample value shipped in example env files; it is
// treated the same as no key at all.
const placeholderKey = "your-gemini-api-key-here"

// Settings is the immutable model configuration built once at startup.
type Settings struct {
	APIKey            string
	Model             string
	Timeout           time.Duration
	TokenOptimization bool
	ForceFreeTier     bool
}

// FreeTier reports whether queries must skip the model entirely.
func (s Settings) FreeTier() bool {
	return s.ForceFreeTier || s.APIKey == "" || s.APIKey == placeholderKey
}

func (s Settings) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}
