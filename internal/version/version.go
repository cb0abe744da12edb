package version

// Build information. Overwritten via ldflags from cmd/mkapp.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
