// Package version holds the application version, overridden at build time via
// -ldflags "-X github.com/stocker-hk/stocker-backend/internal/version.Version=v1.2.3".
package version

// Version is the application version string.
var Version = "dev"
