package main

import (
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

// colorEnabled decides whether errors are colorized. An invalid color option
// disables color.
func colorEnabled(cmd *cobra.Command) bool {
	opts, err := loadOptions(cmd)
	if err != nil {
		return false
	}
	switch opts.Color {
	case "always":
		return true
	case "auto":
		return isatty(os.Stderr)
	}
	return false
}

// isatty reports whether f is a terminal. If it is true, we can use ANSI
// color codes.
func isatty(f *os.File) bool {
	_, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

var (
	rePos  = regexp.MustCompile(`(?m)^[^\s:]+\.go:\d+:\d+:`)
	reHint = regexp.MustCompile(`(?m)^\t.+`)
)

// colorize adds ANSI color codes to the message. Source positions are dimmed
// and indented details are highlighted.
func colorize(message string) string {
	const (
		red   = "\033[31m"
		dim   = "\033[2m"
		reset = "\033[0m"
	)
	m := []byte(message)
	m = rePos.ReplaceAllFunc(m, func(b []byte) []byte {
		return []byte(dim + string(b) + reset)
	})
	m = reHint.ReplaceAllFunc(m, func(b []byte) []byte {
		return []byte(red + string(b) + reset)
	})
	return string(m)
}
