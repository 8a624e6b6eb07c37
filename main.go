package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OuterCloud/family-account-book/internal/config"
	"github.com/OuterCloud/family-account-book/pkg/controllers/v1"
	"github.com/OuterCloud/family-account-book/pkg/database"
	"github.com/OuterCloud/family-account-book/pkg/events"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/OuterCloud/family-account-book/pkg/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags.
var version = "0.0.0"

const shutdownTimeout = 30 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	gin.SetMode(cfg.GinMode)

	// Human readable logs for development, JSON otherwise
	if cfg.HumanLogs() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		log.Logger = log.Output(os.Stdout)
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.With().Timestamp().Logger()

	dsn := cfg.DBDSN
	if cfg.DBDriver == database.DriverSQLite {
		if dsn == "" {
			var err error
			dsn, err = database.SQLiteDSN(cfg.DataDir)
			if err != nil {
				log.Fatal().Msg(err.Error())
			}
		} else {
			dsn = database.WithForeignKeys(dsn)
		}
	}

	db, err := database.Connect(cfg.DBDriver, dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal().Msg(err.Error())
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	co := v1.New(db, publisher, version, cfg.CurrencyLocale)

	r, teardown, err := router.Config(cfg, version)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(co, r.Group("/"), cfg.EnablePprof)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}

	if err := publisher.Close(); err != nil {
		log.Error().Err(err).Msg("closing event publisher")
	}

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("closing database")
		}
	}
}
