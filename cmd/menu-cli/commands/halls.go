package commands

import (
	"fmt"

	"spartyspreads-backend/services/menus/catalog"

	"github.com/spf13/cobra"
)

var hallsLat *float64
var hallsLon *float64

func init() {
	hallsLat = hallsCmd.Flags().Float64("lat", 0, "Latitude to sort halls by walking distance from.")
	hallsLon = hallsCmd.Flags().Float64("lon", 0, "Longitude to sort halls by walking distance from.")
	rootCmd.AddCommand(hallsCmd)
}

var hallsCmd = &cobra.Command{
	Use:   "halls [--lat <latitude> --lon <longitude>]",
	Short: "Lists the known dining halls, optionally sorted by walking distance.",
	Run: func(cmd *cobra.Command, args []string) {
		if *hallsLat == 0 && *hallsLon == 0 {
			for _, h := range catalog.Halls() {
				fmt.Printf("%-8s %s\n", h.ID, h.DisplayName)
			}
			return
		}

		for _, h := range catalog.Nearest(*hallsLat, *hallsLon) {
			meters := catalog.WalkingDistance(*hallsLat, *hallsLon, h.Latitude, h.Longitude)
			fmt.Printf("%-8s %-35s %.0fm\n", h.ID, h.DisplayName, meters)
		}
	},
}
