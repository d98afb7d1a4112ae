//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package main

// isTerminal always reports false: output stays uncoloured on these systems.
func isTerminal(uintptr) bool {
	return false
}
