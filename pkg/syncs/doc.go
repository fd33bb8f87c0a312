// Package syncs provides synchronization primitives and utilities.
//
// This package implements concurrency control mechanisms used when several
// workers produce output files concurrently.
package syncs
