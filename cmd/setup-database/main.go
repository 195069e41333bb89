package main

import (
	"github.com/kingdavid103/Tracking-payment6/internal/config"
	"github.com/kingdavid103/Tracking-payment6/internal/logger"
	"github.com/kingdavid103/Tracking-payment6/internal/seed"

	"github.com/spf13/afero"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.InitLogger(cfg.LogLevel)

	s := seed.NewSeeder(afero.NewOsFs(), cfg.DataDir, cfg.UploadsDir, log)
	report, err := s.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Database setup failed")
	}
	log.Info().
		Strs("directories", report.Directories).
		Str("orders_file", report.OrdersFile).
		Msg("Database setup complete!")
}
