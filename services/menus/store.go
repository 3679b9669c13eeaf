package menus

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"spartyspreads-backend/services/menus/db"
	"spartyspreads-backend/services/menus/scraper"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Store is the structured menu storage. rows are keyed by
// (hall, meal time, date); seed rows live at the empty date and are
// returned only by undated queries.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// ReplaceMenu swaps in a freshly scraped menu for every
// (hall, meal, date) tuple the result touches. the delete and the
// inserts share one transaction so concurrent readers never observe a
// half-replaced meal; a failed result is a logged no-op so prior rows
// stay exactly as they were.
func (s Store) ReplaceMenu(ctx context.Context, hall, date string, result scraper.Result) error {
	ctx, span := tracer.Start(ctx, "ReplaceMenu")
	defer span.End()
	span.SetAttributes(
		attribute.String("hall", hall),
		attribute.String("date", date),
	)

	if !result.Success {
		slog.InfoContext(ctx, "skipping menu replace for failed scrape",
			"hall", hall, "date", date, "error", result.Error)
		return nil
	}

	type row struct {
		name    string
		station string
	}
	// duplicates of an item name within one meal are dropped so rows
	// stay unique per (hall, meal, date, item name)
	rowsByMeal := map[string][]row{}
	seen := map[[2]string]bool{}
	for _, station := range result.Stations {
		for _, meal := range station.Meals {
			for _, item := range meal.Items {
				key := [2]string{meal.Name, item}
				if seen[key] {
					continue
				}
				seen[key] = true
				rowsByMeal[meal.Name] = append(rowsByMeal[meal.Name], row{
					name:    item,
					station: station.Name,
				})
			}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	for mealTime, rows := range rowsByMeal {
		err = txqry.DeleteScrapedMenuItems(ctx, db.DeleteScrapedMenuItemsParams{
			HallName: hall,
			MealTime: mealTime,
			MenuDate: date,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		err = txqry.DeleteHallMenus(ctx, db.DeleteHallMenusParams{
			HallName: hall,
			MealTime: mealTime,
			MenuDate: date,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		for _, r := range rows {
			itemId, err := txqry.CreateScrapedMenuItem(ctx, db.CreateScrapedMenuItemParams{
				Name:        r.name,
				Description: sql.NullString{String: "", Valid: true},
				Category:    sql.NullString{String: r.station, Valid: true},
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return err
			}
			err = txqry.CreateHallMenu(ctx, db.CreateHallMenuParams{
				HallName:   hall,
				MealTime:   mealTime,
				MenuDate:   date,
				MenuItemID: itemId,
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return err
			}
		}
	}

	return tx.Commit()
}

func (s Store) menuRows(ctx context.Context, hall, mealTime, date string) ([]db.MenuItem, error) {
	if date == "" {
		return s.qry.GetHallMenuAnyDate(ctx, db.GetHallMenuAnyDateParams{
			HallName: hall,
			MealTime: mealTime,
		})
	}
	return s.qry.GetHallMenuOnDate(ctx, db.GetHallMenuOnDateParams{
		HallName: hall,
		MealTime: mealTime,
		MenuDate: date,
	})
}

// QueryStationItems groups stored item names by their recorded
// category, which holds the station name for scraped rows. an empty
// date matches rows for any date, including the seed set.
func (s Store) QueryStationItems(ctx context.Context, hall, mealTime, date string) (map[string][]string, error) {
	ctx, span := tracer.Start(ctx, "QueryStationItems")
	defer span.End()

	rows, err := s.menuRows(ctx, hall, mealTime, date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	itemsByStation := map[string][]string{}
	for _, r := range rows {
		station := r.Category.String
		itemsByStation[station] = append(itemsByStation[station], r.Name)
	}
	return itemsByStation, nil
}

// QueryFlatItems is the ungrouped read path.
func (s Store) QueryFlatItems(ctx context.Context, hall, mealTime, date string) ([]MenuItem, error) {
	ctx, span := tracer.Start(ctx, "QueryFlatItems")
	defer span.End()

	rows, err := s.menuRows(ctx, hall, mealTime, date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	items := make([]MenuItem, len(rows))
	for i, r := range rows {
		items[i] = MenuItem{
			Name:        r.Name,
			Description: r.Description.String,
			Category:    r.Category.String,
		}
	}
	return items, nil
}

// LookupDetailedItem resolves an exact item name against the seed
// nutrition table. scraped items are not in the seed set, so callers
// get ok=false for them and fall back to name-only display.
func (s Store) LookupDetailedItem(ctx context.Context, name string) (MenuItemDetailed, bool, error) {
	ctx, span := tracer.Start(ctx, "LookupDetailedItem")
	defer span.End()

	r, err := s.qry.GetMenuItemDetails(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return MenuItemDetailed{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return MenuItemDetailed{}, false, err
	}

	return MenuItemDetailed{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		Category:    r.Category.String,
		Calories:    r.Calories.Int64,
		Fat:         r.Fat.Float64,
		Protein:     r.Protein.Float64,
		Carbs:       r.Carbs.Float64,
		Fiber:       r.Fiber.Float64,
		Sugar:       r.Sugar.Float64,
		Allergens:   r.Allergens.String,
		Ingredients: r.Ingredients.String,
		ImagePath:   r.ImagePath.String,
		Price:       r.Price.Float64,
	}, true, nil
}

// LastFetch reads the durable refresh state for a hall. ok=false means
// no successful fetch has ever been recorded.
func (s Store) LastFetch(ctx context.Context, hall string) (time.Time, bool, error) {
	unix, err := s.qry.GetRefreshState(ctx, hall)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(unix, 0), true, nil
}

// RecordFetch persists the moment of a successful fetch.
func (s Store) RecordFetch(ctx context.Context, hall string, t time.Time) error {
	return s.qry.UpsertRefreshState(ctx, db.UpsertRefreshStateParams{
		HallName:      hall,
		LastFetchUnix: t.Unix(),
	})
}
