// Package pcberrors defines common error types used throughout the application.
//
// This package provides sentinel error values that can be matched with
// [errors.Is], allowing callers to react to well-known failure conditions
// without string comparison.
package pcberrors
