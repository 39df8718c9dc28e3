package main

import (
	"flag"
	"os"

	"github.com/unikampus/kampus-backend/internal/config"
	"github.com/unikampus/kampus-backend/internal/database"
	"github.com/unikampus/kampus-backend/internal/migration"
	pkglogger "github.com/unikampus/kampus-backend/pkg/logger"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	content := flag.Bool("content", false, "also create the member and content tables (local development only)")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	config.LoadDotEnv(env)
	pkglogger.InitStructured(env, "info")
	log := pkglogger.GetLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}
	if *verbose {
		cfg.Database.LogLevel = "info"
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get underlying DB")
	}
	defer sqlDB.Close()

	if *content {
		if err := migration.RunContentSchema(db); err != nil {
			log.Fatal().Err(err).Msg("content schema migration failed")
		}
		log.Info().Msg("content schema ready")
	}

	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("reaction schema migration failed")
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("reaction schema ready")
}
