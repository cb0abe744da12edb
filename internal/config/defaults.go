package config

import "time"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL:  "https://api.github.com",
			Timeout: 30 * time.Second,
		},
		Git: GitConfig{
			DefaultBranch: "main",
			CommitMessage: "Initial commit from template",
		},
	}
}
