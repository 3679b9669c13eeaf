package commands

import (
	"fmt"

	"spartyspreads-backend/lib/serviceutil"
	"spartyspreads-backend/lib/sqliteutil"
	"spartyspreads-backend/services/menus"
	"spartyspreads-backend/services/menus/db"

	"github.com/spf13/cobra"
)

var itemDb *string

func init() {
	itemDb = itemCmd.Flags().String("db", "menus.db", "The database to read menus from.")
	rootCmd.AddCommand(itemCmd)
}

var itemCmd = &cobra.Command{
	Use:   "item <name>",
	Short: "Looks up nutrition details for a menu item by exact name.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *itemDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		service := menus.NewService(database, menus.ServiceOptions{})
		defer service.Close()

		item, ok, err := service.LookupDetailedItem(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to look up item", err)
		}
		if !ok {
			fmt.Println("no nutrition details recorded for this item")
			return
		}

		fmt.Println(item.Name)
		if item.Description != "" {
			fmt.Println(item.Description)
		}
		fmt.Printf("station:  %s\n", item.Category)
		fmt.Printf("calories: %d\n", item.Calories)
		fmt.Printf("fat:      %.1fg\n", item.Fat)
		fmt.Printf("protein:  %.1fg\n", item.Protein)
		fmt.Printf("carbs:    %.1fg\n", item.Carbs)
		fmt.Printf("fiber:    %.1fg\n", item.Fiber)
		fmt.Printf("sugar:    %.1fg\n", item.Sugar)
		if item.Allergens != "" {
			fmt.Printf("allergens: %s\n", item.Allergens)
		}
		if item.Price > 0 {
			fmt.Printf("price:    $%.2f\n", item.Price)
		}
	},
}
