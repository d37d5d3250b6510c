package bininfo

// Populated at build time via ldflags.
var (
	Version   = "0.0.0-unknown"
	BuildTime = ""
	GitCommit = ""
)
