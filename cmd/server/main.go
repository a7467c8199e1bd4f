package main

import (
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/yeol2/8-pumati-be/internal/config"
	"github.com/yeol2/8-pumati-be/internal/model"
	"github.com/yeol2/8-pumati-be/internal/server"
	"github.com/yeol2/8-pumati-be/pkg/database"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect(cfg.DatabaseURL)
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)

	srv := server.NewServer(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Team{},
		&model.Member{},
		&model.OAuth{},
	)
}
