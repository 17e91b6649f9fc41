// Package constant defines immutable application-level identifiers and catalog defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "avmango"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every request to the bulk catalog API.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo is printed at the top of the root command help.
const AsciiArtLogo = `
    ___ _   __   __  ______   _  __________
   / _ | | / /  /  |/  / _ | / |/ / ___/ _ \
  / __ | |/ /  / /|_/ / __ |/    / (_ / // /
 /_/ |_|___/  /_/  /_/_/ |_/_/|_/\___/\___/`
