// Package main bulk-loads attendees, sessions and job postings from CSV
// files, for seeding the database before the event.
package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aws-community-vadodara/feedback-hub/config"
	"github.com/aws-community-vadodara/feedback-hub/internal/jobs"
	"github.com/aws-community-vadodara/feedback-hub/internal/sessions"
	"github.com/aws-community-vadodara/feedback-hub/internal/whitelist"
	"github.com/aws-community-vadodara/feedback-hub/pkg/database"
)

func main() {
	var (
		attendeesPath = flag.String("attendees", "", "CSV file of whitelisted attendees (replaces the whitelist)")
		sessionsPath  = flag.String("sessions", "", "CSV file of sessions (replaces the catalog)")
		jobsPath      = flag.String("jobs", "", "CSV file of job postings (appended)")
	)
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()

	if *attendeesPath == "" && *sessionsPath == "" && *jobsPath == "" {
		logger.Fatal("nothing to import: pass -attendees, -sessions and/or -jobs")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	if *attendeesPath != "" {
		f, err := os.Open(*attendeesPath)
		if err != nil {
			logger.Fatal("open attendees csv", zap.Error(err))
		}
		entries, err := whitelist.ParseCSV(f)
		f.Close()
		if err != nil {
			logger.Fatal("parse attendees csv", zap.Error(err))
		}
		inserted, err := whitelist.NewRepository(pool).ReplaceAll(ctx, entries)
		if err != nil {
			logger.Fatal("import attendees", zap.Error(err))
		}
		logger.Info("attendees imported", zap.Int("parsed", len(entries)), zap.Int("inserted", inserted))
	}

	if *sessionsPath != "" {
		f, err := os.Open(*sessionsPath)
		if err != nil {
			logger.Fatal("open sessions csv", zap.Error(err))
		}
		list, err := sessions.ParseCSV(f)
		f.Close()
		if err != nil {
			logger.Fatal("parse sessions csv", zap.Error(err))
		}
		inserted, err := sessions.NewRepository(pool).ReplaceAll(ctx, list)
		if err != nil {
			logger.Fatal("import sessions", zap.Error(err))
		}
		logger.Info("sessions imported", zap.Int("parsed", len(list)), zap.Int("inserted", inserted))
	}

	if *jobsPath != "" {
		f, err := os.Open(*jobsPath)
		if err != nil {
			logger.Fatal("open jobs csv", zap.Error(err))
		}
		list, err := jobs.ParseJobsCSV(f)
		f.Close()
		if err != nil {
			logger.Fatal("parse jobs csv", zap.Error(err))
		}
		inserted, err := jobs.NewRepository(pool).CreateMany(ctx, list)
		if err != nil {
			logger.Fatal("import jobs", zap.Error(err))
		}
		logger.Info("jobs imported", zap.Int("parsed", len(list)), zap.Int("inserted", inserted))
	}
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
