// Command migrations creates or updates the game_rooms and users tables without starting the server.
package main

import (
	"go.uber.org/zap"

	"cardroom/database"
	"cardroom/utils"
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := database.LoadDotEnv(".env"); err != nil {
		logger.Warn("failed to load .env", zap.Error(err))
	}
	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Open(config, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	store := database.NewStore(db)
	defer store.Close()

	if err := database.Migrate(db, logger); err != nil {
		logger.Error("migration failed", zap.Error(err))
		return
	}
}
