// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// FileDescriptor is anything backed by an OS file descriptor, such as *os.File.
type FileDescriptor interface {
	Fd() uintptr
}

// IsInteractive reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return Streams(os.Stdin, os.Stdout)
}

// Streams reports whether in and out are both terminals.
func Streams(in FileDescriptor, out FileDescriptor) bool {
	if in == nil || out == nil {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}

// Width returns the column count of out, or fallback when it is not a terminal.
func Width(out FileDescriptor, fallback int) int {
	if out == nil {
		return fallback
	}
	width, _, err := term.GetSize(int(out.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
