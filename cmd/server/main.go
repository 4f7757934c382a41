package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/EquinoxAlpha/void/pkg/auth"
	"github.com/EquinoxAlpha/void/pkg/server"
)

// config is loaded from the environment first; flags override it.
type config struct {
	Address    string `env:"VOID_ADDRESS" envDefault:":25565"`
	Database   string `env:"VOID_DATABASE" envDefault:"void.db"`
	Backend    string `env:"VOID_BACKEND" envDefault:"main"`
	MOTD       string `env:"VOID_MOTD" envDefault:"A void login server"`
	MaxPlayers int    `env:"VOID_MAX_PLAYERS" envDefault:"20"`
	LogLevel   string `env:"VOID_LOG_LEVEL" envDefault:"info"`
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse environment")
	}

	address := flag.String("address", cfg.Address, "TCP address to listen on")
	database := flag.String("database", cfg.Database, "Path to the credential database")
	backend := flag.String("backend", cfg.Backend, "Proxy backend to hand authenticated players to")
	motd := flag.String("motd", cfg.MOTD, "Server list MOTD")
	maxPlayers := flag.Int("max-players", cfg.MaxPlayers, "Advertised maximum player count")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Str("level", *logLevel).Msg("invalid log level")
	}
	log = log.Level(level)

	store, err := auth.Open(*database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open credential database")
	}
	defer store.Close()

	srv, err := server.New(server.Config{
		Address:    *address,
		Backend:    *backend,
		MOTD:       *motd,
		MaxPlayers: *maxPlayers,
	}, store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Stringer("signal", sig).Msg("shutting down")
	case <-srv.StopChan():
		log.Info().Msg("shutting down")
	}

	srv.Stop()
}
