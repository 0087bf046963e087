package config

// Build information, set through -ldflags
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags overrides the build information
func SetBuildFlags(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
}

// VersionString renders the build information on one line
func VersionString() string {
	if Commit == "unknown" && Date == "unknown" {
		return Version
	}
	return Version + " (" + Commit + ", " + Date + ")"
}
