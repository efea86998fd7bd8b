package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"city-weather/config"
	v1 "city-weather/internal/controllers/http/v1"
	"city-weather/internal/repositories"
	"city-weather/internal/scheduler"
	"city-weather/internal/services/cities"
	"city-weather/pkg/httpserver"
	"city-weather/pkg/logger"
	"city-weather/pkg/observe"
)

// @title City Weather API
// @version 1.0.0
// @description Tracks per-user city lists and serves current weather and forecasts from OpenWeatherMap.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

// @tag.name Cities
// @tag.description Per-user city lists
// @tag.name Weather
// @tag.description Stateless weather lookups
// @tag.name Catalog
// @tag.description Standalone city catalog
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	var sinks []io.Writer
	var sentryHook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		sentryHook, err = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.DSN, cnf.Sentry.Debug)
		if err != nil {
			log.Fatalf("cannot init sentry: %v", err)
		}
		sinks = append(sinks, sentryHook)
	}

	l := logger.NewZapLogger(cnf.App.Name, cnf.App.Env, os.Stdout,
		logger.WithLevel(cnf.Log.Level),
		logger.WithWriters(sinks...),
	)

	metrics := observe.NewMetrics()

	connectCtx, connectCancel := context.WithTimeout(ctx, cnf.Mongo.Timeout)
	mongoClient, err := repositories.ConnectMongo(connectCtx, cnf.Mongo)
	connectCancel()
	if err != nil {
		l.Fatal("cannot connect to mongo", map[string]any{"err": err.Error()})
	}
	db := mongoClient.Database(cnf.Mongo.Database)

	source, err := repositories.InitWeatherSource(cnf, l, metrics)
	if err != nil {
		l.Fatal("cannot init weather source", map[string]any{"err": err.Error()})
	}

	users := repositories.NewMongoUserRepository(db, cnf.Mongo.UsersCollection, l)
	catalog := repositories.NewMongoCatalogRepository(db, cnf.Mongo.CatalogCollection, l)

	coordinator := cities.NewCoordinator(source, clockwork.NewRealClock(), metrics, l)
	service := cities.NewCityService(users, catalog, source, coordinator, metrics, l)

	refresher := scheduler.New(service, cnf.Refresh.Interval, l)
	if err := refresher.Start(); err != nil {
		l.Fatal("cannot start scheduler", map[string]any{"err": err.Error()})
	}

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  cnf.Server.ReadTimeout,
		WriteTimeout: cnf.Server.WriteTimeout,
		Ready: func(c *fiber.Ctx) bool {
			return mongoClient.Ping(c.UserContext(), readpref.Primary()) == nil
		},
	}, l)

	v1.NewRouter(
		app,
		service,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Error(err, map[string]any{"step": "listen"})
			cancel()
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"version": cnf.App.Version,
		"source":  source.Name(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		refresher.Stop()
		_ = mongoClient.Disconnect(shutdownCtx)
		_ = l.Stop()
		if sentryHook != nil {
			sentryHook.Flush()
		}
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
