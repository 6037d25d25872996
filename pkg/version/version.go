// Package version records the antler build version.
package version

// Version is overridden at release time via -ldflags "-X antler/pkg/version.Version=...".
var Version = "0.4.0-dev"
