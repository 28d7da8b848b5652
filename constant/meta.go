// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Storyline is the canonical application identifier used for filesystem paths and CLI branding.
	Storyline = "storyline"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the HTTP User-Agent string sent with every request to the stories service.
	UserAgent = Storyline + "/" + Version
)

// Build metadata, overridable at link time via -ldflags.
var (
	Revision = "unknown"
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
)
