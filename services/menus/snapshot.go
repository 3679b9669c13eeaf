package menus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeKeyRunes = regexp.MustCompile(`\W+`)

// SnapshotCache keeps a flat serialized copy of the last known-good
// menu per (hall, meal time). it is read only when the structured
// store comes up empty, so a lost or corrupt snapshot is never an
// error, just a miss.
type SnapshotCache struct {
	dir string
}

func NewSnapshotCache(dir string) SnapshotCache {
	return SnapshotCache{dir: dir}
}

// builds a filename like: menu_Brody_Breakfast.json
func (c SnapshotCache) fileFor(hall, mealTime string) string {
	safeHall := "Unknown"
	if hall != "" {
		safeHall = unsafeKeyRunes.ReplaceAllString(hall, "_")
	}
	safeMeal := "Meal"
	if mealTime != "" {
		safeMeal = unsafeKeyRunes.ReplaceAllString(mealTime, "_")
	}
	return filepath.Join(c.dir, fmt.Sprintf("menu_%s_%s.json", safeHall, safeMeal))
}

// Save writes a snapshot, best-effort. failures are logged and
// swallowed; the structured store is the source of truth.
func (c SnapshotCache) Save(ctx context.Context, hall, mealTime string, items []MenuItem) {
	if len(items) == 0 {
		return
	}

	serialized, err := json.Marshal(items)
	if err != nil {
		slog.WarnContext(ctx, "failed to serialize menu snapshot",
			"hall", hall, "meal", mealTime, "err", err)
		return
	}

	err = os.MkdirAll(c.dir, 0o755)
	if err != nil {
		slog.WarnContext(ctx, "failed to create snapshot directory",
			"dir", c.dir, "err", err)
		return
	}
	err = os.WriteFile(c.fileFor(hall, mealTime), serialized, 0o644)
	if err != nil {
		slog.WarnContext(ctx, "failed to write menu snapshot",
			"hall", hall, "meal", mealTime, "err", err)
	}
}

// Load returns the snapshot for a (hall, meal time) pair. missing
// files, unreadable files and undecodable payloads all report ok=false
// alike; callers treat every miss identically.
func (c SnapshotCache) Load(ctx context.Context, hall, mealTime string) ([]MenuItem, bool) {
	serialized, err := os.ReadFile(c.fileFor(hall, mealTime))
	if err != nil || len(serialized) == 0 {
		return nil, false
	}

	var items []MenuItem
	err = json.Unmarshal(serialized, &items)
	if err != nil {
		slog.WarnContext(ctx, "discarding undecodable menu snapshot",
			"hall", hall, "meal", mealTime, "err", err)
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}
