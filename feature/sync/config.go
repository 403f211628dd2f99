package sync

import "time"

// maxDetailLookups is the most store detail lookups one pass may issue.
const maxDetailLookups = 100

// Config holds the limits of one sync pass.
type Config struct {
	// DetailLimit caps the store detail lookups of one pass. Values outside 1..100 mean 100.
	DetailLimit int `mapstructure:"detail_limit" default:"100"`
	// BlacklistThreshold is the failure count at which an id stops being looked up.
	BlacklistThreshold int `mapstructure:"blacklist_threshold" default:"5"`
	// DetailWorkers is the number of concurrent detail lookups. 1 is sequential.
	DetailWorkers int `mapstructure:"detail_workers" default:"1"`
	// RequestTimeoutSeconds bounds every call to a provider.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" default:"30"`
	// RefreshUnreleased re-fetches stored details of unreleased games with spare lookups.
	RefreshUnreleased bool `mapstructure:"refresh_unreleased" default:"true"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		DetailLimit:           100,
		BlacklistThreshold:    5,
		DetailWorkers:         1,
		RequestTimeoutSeconds: 30,
		RefreshUnreleased:     true,
	}
}

func (c Config) requestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) workers() int {
	if c.DetailWorkers < 1 {
		return 1
	}
	return c.DetailWorkers
}

func (c Config) detailLimit() int {
	if c.DetailLimit <= 0 {
		return maxDetailLookups
	}
	return min(c.DetailLimit, maxDetailLookups)
}
