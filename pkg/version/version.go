package version

// Set at build time with -ldflags "-X github.com/tldr-it-stepankutaj/enigmakit/pkg/version.Version=...".
var (
	Version   = "0.1.0"
	GitCommit = "dev"
	BuildDate = "20261015000000"
)

// String returns a human-readable version string.
func String() string {
	return "enigmakit " + Version + " (" + GitCommit + ", " + BuildDate + ")"
}
