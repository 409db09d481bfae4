// Package config loads the archplan profile and resolves AWS credentials
// from the shared credentials file or the SDK default chain.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the archplan client profile.
type Config struct {
	// BackendURL is the architecture generator's root URL.
	BackendURL string `mapstructure:"backend_url"`

	// DeploymentTool is the IaC flavour requested from the generator.
	DeploymentTool string `mapstructure:"deployment_tool"`

	// Region is the default AWS region for credentialed operations.
	Region string `mapstructure:"region"`

	// PollInterval is the wait between successful deployment status polls.
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// PollFailureInterval is the longer wait after a transport failure.
	PollFailureInterval time.Duration `mapstructure:"poll_failure_interval"`

	// PollMaxFailures aborts polling after that many consecutive transport
	// failures; zero polls indefinitely.
	PollMaxFailures int `mapstructure:"poll_max_failures"`
}

// LoadConfig reads the profile file at path, or returns defaults when path
// is empty.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("deployment_tool", "terraform")
	v.SetDefault("region", "us-east-1")
	v.SetDefault("poll_interval", 5*time.Second)
	v.SetDefault("poll_failure_interval", 10*time.Second)
	v.SetDefault("poll_max_failures", 30)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse archplan config: %w", err)
	}
	return &cfg, nil
}
