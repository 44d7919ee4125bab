// Package storage writes export files atomically so an interrupted run
// never leaves a truncated output behind.
package storage
