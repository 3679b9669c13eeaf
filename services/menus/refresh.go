package menus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"spartyspreads-backend/lib/timezone"
	"spartyspreads-backend/services/menus/catalog"
	"spartyspreads-backend/services/menus/scraper"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Observer receives refresh outcomes. callbacks are delivered from a
// single goroutine so consumers never see concurrent conflicting
// updates.
type Observer interface {
	OnHallRefreshed(hall string, success bool, message string)
	OnAllHallsRefreshed()
}

type SchedulerOptions struct {
	Store     Store
	Snapshots SnapshotCache
	Scraper   *scraper.Client
	// optional; nil drops notifications
	Observer Observer
	// staleness window, defaults to one hour
	StaleAfter time.Duration
	// injectable clock for tests, defaults to timezone.Now
	Clock func() time.Time
}

// Scheduler decides when a hall's menu warrants a re-fetch and runs
// the fetch -> parse -> store -> snapshot pipeline on a background
// worker. at most one fetch is in flight per hall at any time.
type Scheduler struct {
	store      Store
	snapshots  SnapshotCache
	scraper    *scraper.Client
	observer   Observer
	staleAfter time.Duration
	clock      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	tasks  chan task
	notify chan func(Observer)

	mu       sync.Mutex
	fetching map[string]bool
}

type task struct {
	all   bool
	hall  string
	date  time.Time
	force bool
}

func NewScheduler(opts SchedulerOptions) *Scheduler {
	if opts.StaleAfter == 0 {
		opts.StaleAfter = time.Hour
	}
	if opts.Clock == nil {
		opts.Clock = timezone.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		store:      opts.Store,
		snapshots:  opts.Snapshots,
		scraper:    opts.Scraper,
		observer:   opts.Observer,
		staleAfter: opts.StaleAfter,
		clock:      opts.Clock,
		ctx:        ctx,
		cancel:     cancel,
		tasks:      make(chan task, 64),
		notify:     make(chan func(Observer), 64),
		fetching:   map[string]bool{},
	}

	s.wg.Add(2)
	go s.runWorker()
	go s.runNotifier()
	return s
}

// Close stops the worker and notifier. an in-flight fetch is allowed
// to fail fast through context cancellation; the hall stays stale and
// is retried on the next process start.
func (s *Scheduler) Close() {
	s.cancel()
	s.wg.Wait()
}

// EnsureFresh queues a staleness check (and fetch, if warranted) for
// one hall. it never blocks on network I/O. a hall that already has a
// fetch queued or in flight is left alone; the outcome of the existing
// fetch is reported instead.
func (s *Scheduler) EnsureFresh(hall string, date time.Time, force bool) {
	if !s.markFetching(hall) {
		slog.Debug("refresh already in flight", "hall", hall)
		return
	}
	s.enqueue(task{hall: hall, date: date, force: force})
}

// RefreshAll queues a sequential refresh of every catalog hall. halls
// are visited one at a time to bound load on the menu site and keep
// failure attribution unambiguous; an all-complete notification fires
// regardless of individual outcomes.
func (s *Scheduler) RefreshAll(force bool) {
	s.enqueue(task{all: true, force: force})
}

func (s *Scheduler) enqueue(t task) {
	select {
	case s.tasks <- t:
	case <-s.ctx.Done():
		if !t.all {
			s.clearFetching(t.hall)
		}
	}
}

func (s *Scheduler) markFetching(hall string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetching[hall] {
		return false
	}
	s.fetching[hall] = true
	return true
}

func (s *Scheduler) clearFetching(hall string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fetching, hall)
}

func (s *Scheduler) runWorker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case t := <-s.tasks:
			if t.all {
				s.refreshAllHalls(t.force)
				continue
			}
			s.refreshHall(t.hall, t.date, t.force)
			s.clearFetching(t.hall)
		}
	}
}

func (s *Scheduler) refreshAllHalls(force bool) {
	for _, hall := range catalog.Halls() {
		if !s.markFetching(hall.ID) {
			continue
		}
		s.refreshHall(hall.ID, s.clock(), force)
		s.clearFetching(hall.ID)
	}
	s.postNotification(func(o Observer) {
		o.OnAllHallsRefreshed()
	})
}

func (s *Scheduler) refreshHall(hall string, date time.Time, force bool) {
	ctx, span := tracer.Start(s.ctx, "refreshHall")
	defer span.End()
	span.SetAttributes(
		attribute.String("hall", hall),
		attribute.Bool("force", force),
	)

	if !force {
		stale, err := s.isStale(ctx, hall)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.notifyHall(hall, false, fmt.Sprintf("Update failed: %s", err.Error()))
			return
		}
		if !stale {
			slog.DebugContext(ctx, "menu is up to date, skipping fetch", "hall", hall)
			s.notifyHall(hall, true, "Menu is up to date")
			return
		}
	}

	slog.InfoContext(ctx, "fetching menu", "hall", hall, "date", timezone.FormatDate(date))
	result := s.scraper.Fetch(ctx, hall, date)
	if !result.Success {
		span.SetStatus(codes.Error, result.Error)
		slog.WarnContext(ctx, "menu fetch failed",
			"hall", hall, "kind", string(result.Failure), "err", result.Error)
		s.notifyHall(hall, false, result.Error)
		return
	}

	err := s.store.ReplaceMenu(ctx, hall, result.Date, result)
	if err != nil {
		// refresh state is left untouched so the next check still sees
		// staleness and retries
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.notifyHall(hall, false, fmt.Sprintf("Update failed: %s", err.Error()))
		return
	}

	err = s.store.RecordFetch(ctx, hall, s.clock())
	if err != nil {
		slog.WarnContext(ctx, "failed to record fetch time", "hall", hall, "err", err)
	}

	s.saveSnapshots(ctx, hall, result)
	s.notifyHall(hall, true, "Menu updated successfully")
}

// a hall is stale when it has never been fetched, when the hourly
// window has lapsed, or when the campus calendar day has rolled over
// since the last fetch. the day check means the first request each
// morning never serves yesterday's menu.
func (s *Scheduler) isStale(ctx context.Context, hall string) (bool, error) {
	last, ok, err := s.store.LastFetch(ctx, hall)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	now := s.clock()
	if now.Sub(last) > s.staleAfter {
		return true, nil
	}
	return !timezone.SameDay(last, now), nil
}

// snapshot writes happen off the worker and only after the structured
// store write committed
func (s *Scheduler) saveSnapshots(ctx context.Context, hall string, result scraper.Result) {
	itemsByMeal := map[string][]MenuItem{}
	for _, station := range result.Stations {
		for _, meal := range station.Meals {
			for _, item := range meal.Items {
				itemsByMeal[meal.Name] = append(itemsByMeal[meal.Name], MenuItem{
					Name:     item,
					Category: station.Name,
				})
			}
		}
	}

	for mealTime, items := range itemsByMeal {
		mealTime, items := mealTime, items
		go s.snapshots.Save(context.WithoutCancel(ctx), hall, mealTime, items)
	}
}

func (s *Scheduler) notifyHall(hall string, success bool, message string) {
	s.postNotification(func(o Observer) {
		o.OnHallRefreshed(hall, success, message)
	})
}

func (s *Scheduler) postNotification(f func(Observer)) {
	if s.observer == nil {
		return
	}
	select {
	case s.notify <- f:
	case <-s.ctx.Done():
	}
}

func (s *Scheduler) runNotifier() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case f := <-s.notify:
			f(s.observer)
		}
	}
}
