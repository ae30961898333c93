package app

import (
	"github.com/spf13/cobra"

	"github.com/BehshadMoeini/rick-and-morty/cmd/rickmorty/cmd"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(cmd.NewCharactersCommand(a))
	rootCmd.AddCommand(cmd.NewFavoritesCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rickmorty %s\n", a.version)
		},
	}
}
