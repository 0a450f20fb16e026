package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/grim3212/drawing-server/config"
	"github.com/grim3212/drawing-server/game"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
		AllowCredentials: true,
	}
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsConfig))

	// Used for server health checks.
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	return r
}

func main() {
	cfg := config.Load()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	words, err := game.LoadWords(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load prompt words")
	}
	if words.Count() < 10 {
		log.Fatal().Int("count", words.Count()).Msg("prompt word list is too small to play with")
	}
	log.Info().Int("count", words.Count()).Msg("loaded prompt words")

	directory := game.NewDirectory(words, game.NewTimerFactory())

	r := CreateServer(cfg.AllowedOrigins)
	game.RegisterRoutes(r, game.NewGameHandler(directory))

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
