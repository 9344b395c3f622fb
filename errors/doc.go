// Package errors provides the structured error type shared by routekit
// packages. Every error routekit itself creates is an *AppError carrying a
// machine-readable code, so callers can tell configuration mistakes apart
// from validation failures and transport problems with errors.As.
//
// Errors raised by user-supplied validators and transports are never wrapped
// in an AppError; they reach the caller unmodified.
package errors
