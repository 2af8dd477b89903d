// Package buildinfo exposes the version stamped into archlayout builds.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/archlayout/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/archlayout/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/archlayout
//
// The CLI prints them for --version and the HTTP server advertises them in
// its Server header.
package buildinfo

import "fmt"

// Stamped by the linker. Local builds keep the defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// product is the name used in the Server header.
const product = "archlayout"

// Product returns "archlayout/<version>", the HTTP Server header value.
func Product() string {
	return product + "/" + Version
}

// Template returns the cobra version template. Commit and date lines are
// left out for unstamped builds.
func Template() string {
	if Commit == "none" && Date == "unknown" {
		return fmt.Sprintf("{{.Name}} %s\n", Version)
	}
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
