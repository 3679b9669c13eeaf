package menus

import (
	"context"
	"testing"
	"time"

	"spartyspreads-backend/lib/testutil"
	"spartyspreads-backend/services/menus/db"
	"spartyspreads-backend/services/menus/scraper"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) Store {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/menus",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	// a second pool connection would get its own empty in-memory db
	setup.DB.SetMaxOpenConns(1)
	return NewStore(setup.DB)
}

func lunchResult(hall, date string) scraper.Result {
	return scraper.Result{
		Success: true,
		Hall:    hall,
		Date:    date,
		Stations: []scraper.Station{
			{Name: "Grill", Meals: []scraper.Meal{
				{Name: "Lunch", Items: []string{"Grilled Chicken", "Cheeseburger"}},
			}},
			{Name: "Salad Bar", Meals: []scraper.Meal{
				{Name: "Lunch", Items: []string{"Garden Salad"}},
			}},
		},
	}
}

func TestSeedMenus(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// seed rows answer undated queries
	byStation, err := store.QueryStationItems(ctx, "Brody", "Breakfast", "")
	require.NoError(t, err)
	require.Contains(t, byStation["Main"], "Scrambled Eggs")
	require.Contains(t, byStation["Main"], "Pancakes")
	require.Contains(t, byStation["Protein"], "Bacon")
	require.Contains(t, byStation["Healthy"], "Fresh Fruit")
	require.Contains(t, byStation["Specialty"], "Belgian Waffles")

	flat, err := store.QueryFlatItems(ctx, "Brody", "Breakfast", "")
	require.NoError(t, err)
	require.Len(t, flat, 5)

	// but never dated ones
	dated, err := store.QueryStationItems(ctx, "Brody", "Breakfast", "2026-08-30")
	require.NoError(t, err)
	require.Empty(t, dated)
}

func TestReplaceMenu(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.ReplaceMenu(ctx, "brody", "2026-08-30", lunchResult("brody", "2026-08-30"))
	require.NoError(t, err)

	byStation, err := store.QueryStationItems(ctx, "brody", "Lunch", "2026-08-30")
	require.NoError(t, err)
	require.Equal(t, map[string][]string{
		"Grill":     {"Cheeseburger", "Grilled Chicken"},
		"Salad Bar": {"Garden Salad"},
	}, byStation)

	// replacing swaps the whole (hall, meal, date) tuple atomically
	err = store.ReplaceMenu(ctx, "brody", "2026-08-30", scraper.Result{
		Success: true,
		Hall:    "brody",
		Date:    "2026-08-30",
		Stations: []scraper.Station{
			{Name: "Grill", Meals: []scraper.Meal{
				{Name: "Lunch", Items: []string{"Veggie Burger"}},
			}},
		},
	})
	require.NoError(t, err)

	byStation, err = store.QueryStationItems(ctx, "brody", "Lunch", "2026-08-30")
	require.NoError(t, err)
	require.Equal(t, map[string][]string{
		"Grill": {"Veggie Burger"},
	}, byStation)
}

func TestReplaceMenuIsIdempotent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	result := lunchResult("brody", "2026-08-30")
	require.NoError(t, store.ReplaceMenu(ctx, "brody", "2026-08-30", result))
	first, err := store.QueryStationItems(ctx, "brody", "Lunch", "2026-08-30")
	require.NoError(t, err)

	require.NoError(t, store.ReplaceMenu(ctx, "brody", "2026-08-30", result))
	second, err := store.QueryStationItems(ctx, "brody", "Lunch", "2026-08-30")
	require.NoError(t, err)

	require.Equal(t, first, second)

	flat, err := store.QueryFlatItems(ctx, "brody", "Lunch", "2026-08-30")
	require.NoError(t, err)
	require.Len(t, flat, 3)
}

func TestReplaceMenuLeavesOtherTuplesAlone(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceMenu(ctx, "brody", "2026-08-30", lunchResult("brody", "2026-08-30")))
	require.NoError(t, store.ReplaceMenu(ctx, "shaw", "2026-08-30", lunchResult("shaw", "2026-08-30")))
	require.NoError(t, store.ReplaceMenu(ctx, "brody", "2026-08-31", scraper.Result{
		Success: true,
		Hall:    "brody",
		Date:    "2026-08-31",
		Stations: []scraper.Station{
			{Name: "Grill", Meals: []scraper.Meal{
				{Name: "Lunch", Items: []string{"Meatloaf"}},
			}},
		},
	}))

	{
		byStation, err := store.QueryStationItems(ctx, "brody", "Lunch", "2026-08-30")
		require.NoError(t, err)
		require.Equal(t, []string{"Cheeseburger", "Grilled Chicken"}, byStation["Grill"])
	}
	{
		byStation, err := store.QueryStationItems(ctx, "shaw", "Lunch", "2026-08-30")
		require.NoError(t, err)
		require.Equal(t, []string{"Cheeseburger", "Grilled Chicken"}, byStation["Grill"])
	}
	{
		byStation, err := store.QueryStationItems(ctx, "brody", "Lunch", "2026-08-31")
		require.NoError(t, err)
		require.Equal(t, []string{"Meatloaf"}, byStation["Grill"])
	}

	// seed rows at the empty date survive every replace
	seeds, err := store.QueryFlatItems(ctx, "Brody", "Breakfast", "")
	require.NoError(t, err)
	require.Len(t, seeds, 5)
}

func TestReplaceMenuDeduplicatesItems(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.ReplaceMenu(ctx, "brody", "2026-08-30", scraper.Result{
		Success: true,
		Hall:    "brody",
		Date:    "2026-08-30",
		Stations: []scraper.Station{
			{Name: "Grill", Meals: []scraper.Meal{
				{Name: "Lunch", Items: []string{"Fries", "Fries"}},
			}},
			{Name: "Snack Counter", Meals: []scraper.Meal{
				{Name: "Lunch", Items: []string{"Fries"}},
			}},
		},
	})
	require.NoError(t, err)

	flat, err := store.QueryFlatItems(ctx, "brody", "Lunch", "2026-08-30")
	require.NoError(t, err)
	require.Len(t, flat, 1)
	require.Equal(t, "Fries", flat[0].Name)
}

func TestReplaceMenuSkipsFailedScrape(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceMenu(ctx, "brody", "2026-08-30", lunchResult("brody", "2026-08-30")))

	err := store.ReplaceMenu(ctx, "brody", "2026-08-30", scraper.Result{
		Success: false,
		Error:   "Network error: connection refused",
		Hall:    "brody",
		Date:    "2026-08-30",
	})
	require.NoError(t, err)

	// prior rows stay exactly as they were
	byStation, err := store.QueryStationItems(ctx, "brody", "Lunch", "2026-08-30")
	require.NoError(t, err)
	require.Equal(t, []string{"Cheeseburger", "Grilled Chicken"}, byStation["Grill"])
}

func TestLookupDetailedItem(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	item, ok, err := store.LookupDetailedItem(ctx, "Grilled Chicken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Grilled Chicken", item.Name)
	require.EqualValues(t, 231, item.Calories)
	require.Equal(t, 43.5, item.Protein)
	require.Equal(t, 6.75, item.Price)

	// a scraped duplicate of a seed name must not shadow the seed detail
	require.NoError(t, store.ReplaceMenu(ctx, "brody", "2026-08-30", lunchResult("brody", "2026-08-30")))
	item, ok, err = store.LookupDetailedItem(ctx, "Grilled Chicken")
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 231, item.Calories)

	// scraped-only items have no nutrition record
	_, ok, err = store.LookupDetailedItem(ctx, "Cheeseburger")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = store.LookupDetailedItem(ctx, "Mystery Loaf")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRefreshStateRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, ok, err := store.LastFetch(ctx, "brody")
	require.NoError(t, err)
	require.False(t, ok)

	at := time.Date(2026, 8, 30, 11, 30, 0, 0, time.UTC)
	require.NoError(t, store.RecordFetch(ctx, "brody", at))

	last, ok, err := store.LastFetch(ctx, "brody")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, last.Equal(at))

	// upsert overwrites
	require.NoError(t, store.RecordFetch(ctx, "brody", at.Add(time.Hour)))
	last, _, err = store.LastFetch(ctx, "brody")
	require.NoError(t, err)
	require.True(t, last.Equal(at.Add(time.Hour)))
}
