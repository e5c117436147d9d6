// Command newtype generates Newtype implementations for the types annotated
// with //newtype:derive in the given packages.
//
//	newtype ./...
//	newtype check ./...
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/smmoosavi/the-newtype/internal/logger"
	newtypeinternal "github.com/smmoosavi/the-newtype/internal/newtype"
)

var Version = "dev"

func init() {
	newtypeinternal.Version = Version
}

func main() {
	cmd := newRootCmd()
	err := cmd.Execute()
	logger.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err, colorEnabled(cmd)))
		os.Exit(1)
	}
}

// formatError renders err with its hints. The message lists one diagnostic
// per line.
func formatError(err error, color bool) string {
	message := err.Error()
	if color {
		message = colorize(message)
	}
	if hint := errors.FlattenHints(err); hint != "" {
		message += "\nhint: " + hint
	}
	return message
}
