package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Environment variables that override defaults.
const (
	EnvGitHubAPIURL  = "MKAPP_GITHUB_API_URL"
	EnvGitHubTimeout = "MKAPP_GITHUB_TIMEOUT"
	EnvDefaultBranch = "MKAPP_DEFAULT_BRANCH"
	EnvCommitMessage = "MKAPP_COMMIT_MESSAGE"
)

// FromEnv returns the default configuration with environment overrides
// applied. getenv is usually os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(getenv(EnvGitHubAPIURL)); v != "" {
		cfg.GitHub.APIURL = strings.TrimRight(v, "/")
	}

	if v := strings.TrimSpace(getenv(EnvGitHubTimeout)); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, EnvGitHubTimeout, "github.timeout", "timeout must be a whole number of seconds", err)
		}
		cfg.GitHub.Timeout = time.Duration(secs) * time.Second
	}

	if v := strings.TrimSpace(getenv(EnvDefaultBranch)); v != "" {
		cfg.Git.DefaultBranch = v
	}

	if v := getenv(EnvCommitMessage); strings.TrimSpace(v) != "" {
		cfg.Git.CommitMessage = v
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func Validate(cfg *Config) error {
	u, err := url.Parse(cfg.GitHub.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return NewConfigErrorWithCause(ConfigValidationFailed, EnvGitHubAPIURL, "github.api_url", "API URL must be an absolute URL", err)
	}
	if cfg.GitHub.Timeout < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, EnvGitHubTimeout, "github.timeout", "timeout cannot be negative")
	}
	if cfg.Git.DefaultBranch == "" || strings.ContainsAny(cfg.Git.DefaultBranch, " ~^:?*[\\") {
		return NewConfigErrorWithField(ConfigValidationFailed, EnvDefaultBranch, "git.default_branch", "invalid branch name: "+cfg.Git.DefaultBranch)
	}
	return nil
}
