// Package io provides output channel implementations for the LS8 emulator.
// Channels are line oriented: each printed value and each notice is a
// single line of text.
package io

// Channel defines the interface for the output collaborator of the CPU.
type Channel interface {
	// Print emits a register value.
	Print(value byte) error
	// Notice emits a diagnostic message, such as a stack fault or halt.
	Notice(text string) error
}
