package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/kraft/internal/config"
	"github.com/2beens/kraft/internal/db"
	"github.com/2beens/kraft/internal/social"
	"github.com/2beens/kraft/internal/stats"
	"github.com/2beens/kraft/internal/telemetry/metrics"
	"github.com/2beens/kraft/internal/users"
	"github.com/2beens/kraft/internal/workouts"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// streak_sync recomputes every stored streak once and exits.
func main() {
	env := flag.String("env", "development", "environment [production | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	dotEnvPath := flag.String("dotenv", ".env", "optional .env file with secrets")
	timeout := flag.Duration("timeout", 10*time.Minute, "max duration of the whole sync")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		color.Red("[ERROR] load config: %s", err)
		os.Exit(1)
	}
	secrets, err := config.LoadSecrets(*dotEnvPath)
	if err != nil {
		color.Red("[ERROR] load secrets: %s", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		color.Red("[ERROR] %s", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     secrets.PostgresUser,
		DBPassword: secrets.PostgresPassword,
	})
	if err != nil {
		color.Red("[ERROR] db pool: %s", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	color.Cyan("[DEBUG] reconciling streaks in %s [%s]", cfg.PostgresDBName, loc)

	usersRepo := users.NewRepo(dbPool)
	statsService := stats.NewService(
		workouts.NewRepo(dbPool),
		usersRepo,
		social.NewRepo(dbPool),
		metrics.NewManager("kraft", "streak_sync", prometheus.NewRegistry()),
		loc,
	)

	begin := time.Now()
	synced, err := statsService.ReconcileAll(ctx)
	took := time.Since(begin).Round(time.Millisecond)

	failures := multierr.Errors(err)
	for _, e := range failures {
		color.Red("[ERROR] %s", e)
	}
	if len(failures) > 0 {
		color.Yellow("[INFO] synced %d streaks, %d failed, took %s", synced, len(failures), took)
		os.Exit(1)
	}
	color.Green("[INFO] synced %d streaks, took %s", synced, took)
}
