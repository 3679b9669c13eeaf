package commands

import (
	"fmt"
	"time"

	"spartyspreads-backend/lib/serviceutil"
	"spartyspreads-backend/lib/timezone"
	"spartyspreads-backend/services/menus/scraper"

	"github.com/spf13/cobra"
)

var scrapeDate *string
var scrapeBaseUrl *string

func init() {
	scrapeDate = scrapeCmd.Flags().String("date", "", "The date to scrape in YYYY-MM-DD form, defaults to today.")
	scrapeBaseUrl = scrapeCmd.Flags().String("base-url", "", "Override the menu site base url.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <hall> [--date <YYYY-MM-DD>]",
	Short: "Scrapes one dining hall's menu page and prints the parsed stations.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date := timezone.Now()
		if *scrapeDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", *scrapeDate, timezone.Location)
			if err != nil {
				serviceutil.Fatal("failed to parse date", err)
			}
			date = parsed
		}

		client := scraper.NewClient(scraper.ClientOptions{
			BaseURL: *scrapeBaseUrl,
		})

		t1 := time.Now()
		result := client.Fetch(cmd.Context(), args[0], date)
		t2 := time.Now()

		if !result.Success {
			fmt.Printf("scrape failed (%s): %s\n", result.Failure, result.Error)
			return
		}

		for _, station := range result.Stations {
			fmt.Println(station.Name)
			for _, meal := range station.Meals {
				fmt.Printf("  %s\n", meal.Name)
				for _, item := range meal.Items {
					fmt.Printf("    - %s\n", item)
				}
			}
		}
		fmt.Printf("scraped %d stations in %.2fs\n", len(result.Stations), t2.Sub(t1).Seconds())
	},
}
