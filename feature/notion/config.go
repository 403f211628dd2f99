package notion

// Config holds the notes provider credentials and endpoints.
type Config struct {
	// APIKey is the integration token.
	APIKey string `mapstructure:"api_key" default:""`
	// DatabaseID is the database holding one page per game.
	DatabaseID string `mapstructure:"database_id" default:""`
	// APIHost is the base URL of the API.
	APIHost string `mapstructure:"api_host" default:"https://api.notion.com"`
	// Version is sent as the Notion-Version header.
	Version string `mapstructure:"version" default:"2022-06-28"`
	// TimeoutSeconds bounds a single HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
