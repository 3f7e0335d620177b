package evmvm

import "fmt"

// The version is exposed as explicit components rather than a packed
// integer, so hosts never have to guess an encoding scheme.
const (
	VersionMajor = 0
	VersionMinor = 2
	VersionPatch = 0
)

// Version returns the library version as a "major.minor.patch" string.
func Version() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
