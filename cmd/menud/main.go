package main

import (
	"context"
	"log/slog"
	"time"

	"spartyspreads-backend/lib/configutil"
	"spartyspreads-backend/lib/serviceutil"
	"spartyspreads-backend/lib/sqliteutil"
	"spartyspreads-backend/lib/telemetry"
	"spartyspreads-backend/lib/timezone"
	"spartyspreads-backend/services/menus"
	menusdb "spartyspreads-backend/services/menus/db"
)

type Config struct {
	Database    string `json:"database"`
	SnapshotDir string `json:"snapshot_dir"`
	BaseUrl     string `json:"base_url"`
	// minutes between refresh-all sweeps, defaults to 60
	RefreshInterval int `json:"refresh_interval"`
}

type logObserver struct{}

func (logObserver) OnHallRefreshed(hall string, success bool, message string) {
	if success {
		slog.Info("hall refreshed", "hall", hall, "message", message)
		return
	}
	slog.Warn("hall refresh failed", "hall", hall, "message", message)
}

func (logObserver) OnAllHallsRefreshed() {
	slog.Info("all halls refreshed")
}

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(false)

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = 60
	}

	db, err := sqliteutil.OpenDB(menusdb.Schema, config.Database)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	defer db.Close()

	t, err := telemetry.SetupFromEnv(ctx, "menud")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	service := menus.NewService(db, menus.ServiceOptions{
		SnapshotDir: config.SnapshotDir,
		BaseURL:     config.BaseUrl,
		Observer:    logObserver{},
	})
	defer service.Close()

	service.RefreshAll(false)

	ticker := time.NewTicker(time.Duration(config.RefreshInterval) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			slog.Info("starting scheduled refresh", "time", timezone.Now())
			service.RefreshAll(false)
		}
	}
}
