package commands

import (
	"fmt"
	"sort"

	"spartyspreads-backend/lib/serviceutil"
	"spartyspreads-backend/lib/sqliteutil"
	"spartyspreads-backend/services/menus"
	"spartyspreads-backend/services/menus/db"

	"github.com/spf13/cobra"
)

var queryDb *string
var queryDate *string
var queryFlat *bool

func init() {
	queryDb = queryCmd.Flags().String("db", "menus.db", "The database to read menus from.")
	queryDate = queryCmd.Flags().String("date", "", "Restrict to one date in YYYY-MM-DD form; empty matches any date.")
	queryFlat = queryCmd.Flags().Bool("flat", false, "Print a flat item list instead of grouping by station.")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <hall> <meal> [--date <YYYY-MM-DD>] [--flat]",
	Short: "Prints the stored menu for a hall and meal time, grouped by station.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *queryDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		service := menus.NewService(database, menus.ServiceOptions{})
		defer service.Close()

		if *queryFlat {
			items, err := service.QueryFlatItems(cmd.Context(), args[0], args[1], *queryDate)
			if err != nil {
				serviceutil.Fatal("failed to query menu", err)
			}
			for _, item := range items {
				fmt.Printf("- %s\n", item.Name)
			}
			return
		}

		result, err := service.StationItemsWithFallback(cmd.Context(), args[0], args[1], *queryDate)
		if err != nil {
			serviceutil.Fatal("failed to query menu", err)
		}
		if len(result.ItemsByStation) == 0 {
			fmt.Println("no menu stored for this hall and meal")
			return
		}
		if result.FromCache {
			fmt.Println("(serving last known menu from snapshot cache)")
		}

		stations := make([]string, 0, len(result.ItemsByStation))
		for station := range result.ItemsByStation {
			stations = append(stations, station)
		}
		sort.Strings(stations)

		for _, station := range stations {
			fmt.Println(station)
			for _, item := range result.ItemsByStation[station] {
				fmt.Printf("  - %s\n", item)
			}
		}
	},
}
