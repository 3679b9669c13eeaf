package menus

import (
	"context"
	"database/sql"
	"time"

	"spartyspreads-backend/services/menus/scraper"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/menus")

type ServiceOptions struct {
	// directory for fallback snapshot files
	SnapshotDir string
	// menu site base url, defaults to the live site
	BaseURL string
	// optional refresh observer
	Observer Observer
	// see SchedulerOptions
	StaleAfter time.Duration
	Clock      func() time.Time
}

// Service bundles the menu store, snapshot cache, scraper and refresh
// scheduler behind the operations collaborators are allowed to call.
// construct one explicitly and Close it when done; there is no global
// instance.
type Service struct {
	store     Store
	snapshots SnapshotCache
	scheduler *Scheduler
}

func NewService(database *sql.DB, opts ServiceOptions) Service {
	store := NewStore(database)
	snapshots := NewSnapshotCache(opts.SnapshotDir)
	client := scraper.NewClient(scraper.ClientOptions{
		BaseURL: opts.BaseURL,
	})
	scheduler := NewScheduler(SchedulerOptions{
		Store:      store,
		Snapshots:  snapshots,
		Scraper:    client,
		Observer:   opts.Observer,
		StaleAfter: opts.StaleAfter,
		Clock:      opts.Clock,
	})

	return Service{
		store:     store,
		snapshots: snapshots,
		scheduler: scheduler,
	}
}

func (s Service) Close() {
	s.scheduler.Close()
}

func (s Service) EnsureFresh(hall string, date time.Time, force bool) {
	s.scheduler.EnsureFresh(hall, date, force)
}

func (s Service) RefreshAll(force bool) {
	s.scheduler.RefreshAll(force)
}

func (s Service) QueryStationItems(ctx context.Context, hall, mealTime, date string) (map[string][]string, error) {
	return s.store.QueryStationItems(ctx, hall, mealTime, date)
}

func (s Service) QueryFlatItems(ctx context.Context, hall, mealTime, date string) ([]MenuItem, error) {
	return s.store.QueryFlatItems(ctx, hall, mealTime, date)
}

func (s Service) LookupDetailedItem(ctx context.Context, name string) (MenuItemDetailed, bool, error) {
	return s.store.LookupDetailedItem(ctx, name)
}

// FallbackResult carries the three-source degradation outcome: live
// structured rows, or the last-known-good snapshot (FromCache set), or
// nothing at all. both-empty is an empty result, not an error.
type FallbackResult struct {
	ItemsByStation map[string][]string
	FromCache      bool
}

// StationItemsWithFallback reads the structured store first and falls
// back to the snapshot cache when it has no rows.
func (s Service) StationItemsWithFallback(ctx context.Context, hall, mealTime, date string) (FallbackResult, error) {
	ctx, span := tracer.Start(ctx, "StationItemsWithFallback")
	defer span.End()

	stored, err := s.store.QueryStationItems(ctx, hall, mealTime, date)
	if err != nil {
		return FallbackResult{}, err
	}
	if len(stored) > 0 {
		return FallbackResult{ItemsByStation: stored}, nil
	}

	cached, ok := s.snapshots.Load(ctx, hall, mealTime)
	if !ok {
		return FallbackResult{ItemsByStation: map[string][]string{}}, nil
	}

	itemsByStation := map[string][]string{}
	for _, item := range cached {
		itemsByStation[item.Category] = append(itemsByStation[item.Category], item.Name)
	}
	return FallbackResult{
		ItemsByStation: itemsByStation,
		FromCache:      true,
	}, nil
}
