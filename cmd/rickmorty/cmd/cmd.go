// Package cmd implements the rickmorty subcommands. Commands receive
// their dependencies through the AppContext interface so they stay
// decoupled from the full application wiring.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	rickmorty "github.com/BehshadMoeini/rick-and-morty"
	"github.com/BehshadMoeini/rick-and-morty/internal/cmd/output"
)

// AppContext defines what commands need from the application.
type AppContext interface {
	Client(opts ...rickmorty.Option) (rickmorty.Client, error)
	Format() output.Format
	Logger() *zerolog.Logger
	Quiet() bool
}

// parseIDs converts positional arguments to character identifiers.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid character id %q: must be a positive integer", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// status prints a progress note to stderr unless quiet output was
// requested. Stdout stays reserved for formatted results.
func status(app AppContext, format string, args ...any) {
	if app.Quiet() {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
