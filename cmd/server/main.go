package main

import (
	"github.com/ShahinyanDav/chessnaptracker/app"
	"github.com/ShahinyanDav/chessnaptracker/app/config"
	"github.com/ShahinyanDav/chessnaptracker/pkg/logger"
)

func main() {
	log := logger.New("server")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	router := app.NewRouter(app.NewHandler(cfg))
	log.Infow("listening", "port", cfg.Port)
	if err := router.Run("0.0.0.0:" + cfg.Port); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
