package config

import "time"

// Config represents the ambient mkapp configuration. It is assembled from
// built-in defaults and MKAPP_* environment overrides; there is no file.
type Config struct {
	// GitHub configuration for repository hosting and template download.
	GitHub GitHubConfig
	// Git configuration for the local repository.
	Git GitConfig
}

// GitHubConfig represents GitHub-specific settings.
type GitHubConfig struct {
	// APIURL is the GitHub API URL (for enterprise installations).
	APIURL string
	// Timeout is the HTTP request timeout.
	Timeout time.Duration
}

// GitConfig represents local repository settings.
type GitConfig struct {
	// DefaultBranch is the branch the first commit lands on and is pushed.
	DefaultBranch string
	// CommitMessage is the message of the first commit.
	CommitMessage string
}
