package commands

import (
	"log/slog"

	"spartyspreads-backend/lib/serviceutil"
	"spartyspreads-backend/lib/sqliteutil"
	"spartyspreads-backend/lib/timezone"
	"spartyspreads-backend/services/menus"
	"spartyspreads-backend/services/menus/db"

	"github.com/spf13/cobra"
)

var refreshDb *string
var refreshSnapshotDir *string
var refreshForce *bool

func init() {
	refreshDb = refreshCmd.Flags().String("db", "menus.db", "The database to write menus to.")
	refreshSnapshotDir = refreshCmd.Flags().String("snapshot-dir", ".dev/snapshots", "The directory to write fallback snapshots to.")
	refreshForce = refreshCmd.Flags().Bool("force", false, "Refresh even if the stored menus are fresh.")
	rootCmd.AddCommand(refreshCmd)
}

type refreshObserver struct {
	hallDone chan struct{}
	allDone  chan struct{}
}

func (o *refreshObserver) OnHallRefreshed(hall string, success bool, message string) {
	if success {
		slog.Info("hall refreshed", "hall", hall, "message", message)
	} else {
		slog.Warn("hall refresh failed", "hall", hall, "message", message)
	}
	select {
	case o.hallDone <- struct{}{}:
	default:
	}
}

func (o *refreshObserver) OnAllHallsRefreshed() {
	close(o.allDone)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh [hall] [--db <path/to/menus.db>] [--force]",
	Short: "Refreshes one hall's menu for today, or every hall's when none is given.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *refreshDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		observer := &refreshObserver{
			hallDone: make(chan struct{}, 1),
			allDone:  make(chan struct{}),
		}
		service := menus.NewService(database, menus.ServiceOptions{
			SnapshotDir: *refreshSnapshotDir,
			Observer:    observer,
		})
		defer service.Close()

		if len(args) == 1 {
			service.EnsureFresh(args[0], timezone.Now(), *refreshForce)
			select {
			case <-observer.hallDone:
			case <-cmd.Context().Done():
			}
			return
		}

		service.RefreshAll(*refreshForce)
		select {
		case <-observer.allDone:
		case <-cmd.Context().Done():
		}
	},
}
