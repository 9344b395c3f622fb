// Package util provides small generic helpers shared by routekit packages:
// deterministic map iteration and the recursive map merge used to combine
// client-level and call-level options.
package util
