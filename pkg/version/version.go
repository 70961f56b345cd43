// Package version exposes the build version of the fleetkpi binary.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// version is set at build time via -ldflags "-X github.com/rshade/fleetkpi/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Overridden by the linker.
var version = "0.1.0-dev"

// GetVersion returns the raw build version string.
func GetVersion() string {
	return version
}

// Parse returns the build version as a semantic version.
func Parse() (*semver.Version, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("parsing build version %q: %w", version, err)
	}
	return v, nil
}
