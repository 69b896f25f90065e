package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/catalog"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Print the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, repo, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		products, err := repo.Products(cmd.Context())
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		printProducts(cmd.OutOrStdout(), products)
		return nil
	},
}

func printProducts(out io.Writer, products []catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No products. Run `salesbot seed` first."))
		return
	}

	header := []string{"ID", "NAME", "PRICE", "STOCK", "DESCRIPTION"}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.Itoa(p.Count),
			p.Description,
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = headerStyle.Width(widths[i] + 2).Render(h)
	}
	fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top, cells...))

	for _, row := range rows {
		for i, cell := range row {
			cells[i] = cellStyle.Width(widths[i] + 2).Render(cell)
		}
		fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
}
