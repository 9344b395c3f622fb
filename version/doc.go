// Package version reports the routekit build version.
//
// The version is taken from -ldflags when set:
//
//	go build -ldflags "-X github.com/kbukum/routekit/version.Version=1.0.0"
//
// and otherwise from the module build information of the binary that
// imports routekit.
package version
