// Package version holds the build identity of the tracefilter binary.
//
// Release builds set the variables with
//
//	go build -ldflags "-X github.com/planbiir/tracefilter/version.Version=v1.2.0 \
//	  -X github.com/planbiir/tracefilter/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

// FullVersion is what `tracefilter version` and `--version` print.
var FullVersion = fmt.Sprintf("tracefilter %s (commit %s, %s %s/%s)",
	Version, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
