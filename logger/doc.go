// Package logger is the zerolog-backed structured logger shared by routekit
// packages.
//
// Each package logs through logger.Get with its own component name. Register
// swaps in a dedicated logger for one component; SetGlobalLogger changes the
// logger every other component derives from.
//
//	logging:
//	  level: debug
//	  format: json
//	  output: stdout
//
//	logger.Register("routeclient", logger.New(&cfg, "routeclient"))
//	logger.Get("routeclient").Warn("response does not match its schema",
//	    logger.RouteFields("users.get", "GET"))
package logger
