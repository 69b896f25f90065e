package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/catalog"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load products from a YAML file",
	Long: `Upserts products by name from a YAML catalog file.

Example file:
  products:
    - name: iPhone 15
      description: 6.1-inch OLED, A16 Bionic, 48MP camera
      price: 32900
      count: 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := catalog.LoadSeedFile(seedFile)
		if err != nil {
			return err
		}

		db, repo, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := repo.UpsertProducts(cmd.Context(), products)
		if err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Seeded %d products", n)))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "catalog.yaml", "YAML catalog file")
}
