package corkboard

import _ "embed"

// Version exposes the version of the library, embedded from version.txt so
// release tooling only has to touch one file.
//
//go:embed version.txt
var Version string
