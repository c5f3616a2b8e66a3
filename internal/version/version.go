// Package version holds build metadata injected through -ldflags.
package version

// Version is the application version, set at build time with
// -ldflags "-X github.com/ndewijer/Money-Manager-Backend/internal/version.Version=v1.2.3".
var Version = "dev"
