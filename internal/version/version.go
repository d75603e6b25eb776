// Package version holds the build-time version string, overridable via
// -ldflags "-X ratline/internal/version.AppVersion=...".
package version

// AppVersion is the program version reported by `rat --version`.
var AppVersion = "dev"
