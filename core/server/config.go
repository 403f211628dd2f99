package server

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Config holds configuration for the status API and the sync scheduler.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// Schedule is the cron expression for periodic sync passes. Empty disables scheduling.
	Schedule string `mapstructure:"schedule" default:"0 */6 * * *"`
	// RunOnStart triggers one pass as soon as the server starts.
	RunOnStart bool `mapstructure:"run_on_start" default:"false"`
}

// ValidateSchedule checks the cron expression of the schedule.
func (c Config) ValidateSchedule() error {
	if c.Schedule == "" {
		return nil
	}
	if _, err := cron.ParseStandard(c.Schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", c.Schedule, err)
	}
	return nil
}
