package marginalia

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version in SemVer form, without a leading v.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns Version as a release tag, e.g. "v0.1.0".
func VersionTag() string {
	return "v" + Version()
}
