package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/arushahmd/compass-voice/internal/adapters/file"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Validate and list the menu",
	Long:  `Loads the configured menu, validates it and prints every item by category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		m, err := file.NewMenuLoader(cfg.Menu.Path).LoadMenu(cmd.Context())
		if err != nil {
			return err
		}
		store := menu.NewStore(m)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Restaurant %s: %d items in %d categories\n\n", m.RestaurantID, len(m.Items), len(m.Categories))

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for i := range m.Categories {
			c := &m.Categories[i]
			fmt.Fprintf(tw, "%s\n", strings.ToUpper(c.Name))
			for _, it := range store.CategoryItems(c) {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", it.ItemID, it.Name, priceLabel(it))
			}
		}
		return tw.Flush()
	},
}

func priceLabel(it *menu.MenuItem) string {
	if !it.IsAvailable() {
		return "unavailable"
	}
	if !it.Pricing.IsVariant() {
		return menu.FormatCents(it.Pricing.PriceCents)
	}
	parts := make([]string, 0, len(it.Pricing.Variants))
	for _, v := range it.Pricing.Variants {
		parts = append(parts, v.Label+" "+menu.FormatCents(v.PriceCents))
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
