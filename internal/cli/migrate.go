package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the catalog schema",
	Long:  "Creates the products and orders tables, the order name index and the price/count check constraints. Safe to run repeatedly.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, repo, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repo.CreateSchema(cmd.Context()); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Schema is up to date"))
		return nil
	},
}
