package main

import (
	"log/slog"
	"time"
)

func main() {
	slog.Info("Starting cleanup job")
	start := time.Now()

	if conf.RunTasks.CleanUpAllowlistEntries {
		cleanUpAllowlistEntries()
	}

	if conf.RunTasks.ExpireMemberships {
		expireMemberships()
	}

	slog.Info("Cleanup job completed", slog.Duration("duration", time.Since(start)))
}

func cleanUpAllowlistEntries() {
	slog.Debug("Start cleaning up expired allowlist entries")

	count, err := allowlistDBService.DeleteExpiredEntries(time.Now().Add(-maxEntryAge))
	if err != nil {
		slog.Error("Error cleaning up allowlist entries", slog.String("error", err.Error()))
		return
	}

	slog.Info("Clean up allowlist entries finished", slog.Int("count", int(count)))
}

func expireMemberships() {
	slog.Debug("Start expiring memberships")

	count, err := userDBService.ExpireMemberships(time.Now().Add(-maxEntryAge))
	if err != nil {
		slog.Error("Error expiring memberships", slog.String("error", err.Error()))
		return
	}

	slog.Info("Expire memberships finished", slog.Int("count", int(count)))
}
