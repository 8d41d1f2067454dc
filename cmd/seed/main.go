// Command seed fills an empty store with the sample categories, services and staff.
package main

import (
	"context"
	"time"

	"bookingadmin/config"
	"bookingadmin/database"
	"bookingadmin/services/seed"
	"bookingadmin/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close(context.Background())

	report, err := seed.NewSeeder(store, logger).Run(ctx)
	if err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}
	if report.Empty() {
		logger.Info("Nothing to seed", zap.Strings("existing", report.Existing))
	}
}
