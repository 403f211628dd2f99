package steam

// Config holds the library provider credentials and endpoints.
type Config struct {
	// APIKey is the Steam Web API key.
	APIKey string `mapstructure:"api_key" default:""`
	// UserID is the 64-bit Steam id of the tracked account.
	UserID string `mapstructure:"user_id" default:""`
	// APIHost is the base URL of the Web API.
	APIHost string `mapstructure:"api_host" default:"https://api.steampowered.com"`
	// StoreHost is the base URL of the store front used for app details.
	StoreHost string `mapstructure:"store_host" default:"https://store.steampowered.com"`
	// Currency is passed to the store so prices and regional data are consistent.
	Currency string `mapstructure:"currency" default:"GBP"`
	// TimeoutSeconds bounds a single HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
