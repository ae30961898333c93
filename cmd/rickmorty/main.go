// Command rickmorty is a terminal browser for the Rick and Morty
// character catalog: page through the list, filter it, inspect a
// character, and keep a persisted set of favorites.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BehshadMoeini/rick-and-morty/cmd/rickmorty/app"
)

// version is populated by goreleaser.
var version = "dev"

func main() {
	application, err := app.New(version)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app.ExitOnError(application.Execute(ctx, os.Args[1:]))
}
