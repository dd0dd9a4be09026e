package version

import "fmt"

// VERSION is the major.minor.patch version of the binary, set with -ldflags at build time.
var VERSION string

// GITCOMMIT is the short git hash the binary was built from, set with -ldflags at build time.
var GITCOMMIT string

// VersionToString returns "<version> - <commit>", or "dev" for binaries built without version information.
func VersionToString() string {
	if VERSION == "" && GITCOMMIT == "" {
		return "dev"
	}
	return fmt.Sprintf("%s - %s", VERSION, GITCOMMIT)
}
