// Command etl runs one pass of the normalization pipeline: it reads the
// flat point-of-sale export, resolves and classifies every row, and loads
// the normalized tables into Postgres in foreign-key order.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/greenspot/grocer/internal/config"
	"github.com/greenspot/grocer/internal/database"
	"github.com/greenspot/grocer/internal/etl"
	"github.com/greenspot/grocer/internal/logging"
)

func main() {
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	var (
		file       = flag.String("file", cfg.Pipeline.SourceFile, "path of the flat export to ingest")
		initSchema = flag.Bool("init-schema", cfg.Pipeline.InitSchema, "create missing tables before loading")
	)
	flag.Parse()

	if *file == "" {
		slog.Error("no source file: pass -file or set ETL_SOURCE_FILE")
		os.Exit(1)
	}

	export, err := os.Open(*file)
	if err != nil {
		slog.Error("failed to open export", "file", *file, "error", err)
		os.Exit(1)
	}
	defer export.Close()

	ctx := context.Background()

	// Sink connection is pre-flight: if it cannot be acquired the pipeline
	// never starts.
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	if *initSchema {
		if err := database.EnsureSchema(ctx, pool); err != nil {
			slog.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
	}

	pipeline := etl.NewPipeline(database.NewStore(pool), slog.Default())
	summary, err := pipeline.Run(ctx, export)

	fmt.Println(summary)
	for _, d := range summary.Diagnostics {
		slog.Warn("diagnostic", "kind", d.Kind, "line", d.Line, "field", d.Field, "message", d.Message)
	}

	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
