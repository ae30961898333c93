package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BehshadMoeini/rick-and-morty/internal/cmd/output"
)

// NewFavoritesCommand creates the favorites command with app dependencies.
func NewFavoritesCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Short:   "Manage the persisted favorites set",
		Aliases: []string{"favorite", "favs", "fav"},
		Long: `Favorites keeps full character snapshots in a local JSON file, so
the list renders without any network access. Membership is keyed by
character identifier.`,
		Example: `  rickmorty favorites add 1 2 3
  rickmorty favorites list
  rickmorty favorites remove 2
  rickmorty favorites export -o yaml > favorites.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newFavoritesAddCommand(app))
	cmd.AddCommand(newFavoritesRemoveCommand(app))
	cmd.AddCommand(newFavoritesListCommand(app))
	cmd.AddCommand(newFavoritesExportCommand(app))

	return cmd
}

// newFavoritesAddCommand creates the favorites add subcommand.
func newFavoritesAddCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>...",
		Short: "Add characters to favorites by identifier",
		Args:  cobra.MinimumNArgs(1),
		Example: `  rickmorty favorites add 1
  rickmorty favorites add 1 2 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			rm, err := app.Client()
			if err != nil {
				return err
			}
			defer func() { _ = rm.Close() }()

			// One round trip resolves the whole set; identifiers the
			// service does not know are simply absent from the result.
			found, err := rm.CharactersByID(cmd.Context(), ids)
			if err != nil {
				return err
			}

			resolved := make(map[int]bool, len(found))
			for _, c := range found {
				if err := rm.Favorites().Add(c); err != nil {
					return err
				}
				resolved[c.ID.Int()] = true
			}

			status(app, "Favorited %d of %d characters", len(resolved), len(dedupe(ids)))
			for _, id := range dedupe(ids) {
				if !resolved[id] {
					fmt.Fprintf(os.Stderr, "Warning: character %d does not exist, skipped\n", id)
				}
			}
			return nil
		},
	}
}

// newFavoritesRemoveCommand creates the favorites remove subcommand.
func newFavoritesRemoveCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>...",
		Short:   "Remove characters from favorites",
		Aliases: []string{"rm"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			rm, err := app.Client()
			if err != nil {
				return err
			}
			defer func() { _ = rm.Close() }()

			// Removing an absent identifier is a no-op, not an error.
			for _, id := range ids {
				if err := rm.Favorites().Remove(id); err != nil {
					return err
				}
			}
			status(app, "%d favorites remain", rm.Favorites().Len())
			return nil
		},
	}
}

// newFavoritesListCommand creates the favorites list subcommand.
func newFavoritesListCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorited characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rm, err := app.Client()
			if err != nil {
				return err
			}
			defer func() { _ = rm.Close() }()

			list := rm.Favorites().List()
			if len(list) == 0 {
				status(app, "No favorites yet; add some with 'rickmorty favorites add <id>'")
				return nil
			}

			return printCharacters(app, rm.Favorites().IsFavorite, list)
		},
	}
}

// newFavoritesExportCommand creates the favorites export subcommand.
func newFavoritesExportCommand(app AppContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export favorite snapshots as JSON or YAML",
		Args:  cobra.NoArgs,
		Example: `  rickmorty favorites export > favorites.json
  rickmorty favorites export -o yaml --file favorites.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rm, err := app.Client()
			if err != nil {
				return err
			}
			defer func() { _ = rm.Close() }()

			w := os.Stdout
			if file != "" {
				f, err := os.Create(file)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			// Exports are structured data; table formats degrade to JSON.
			format := app.Format()
			if format != output.FormatYAML {
				format = output.FormatJSON
			}
			return output.NewFormatter(format).Format(w, rm.Favorites().List())
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "write to a file instead of stdout")

	return cmd
}

// dedupe removes duplicate identifiers, preserving first-seen order.
func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
