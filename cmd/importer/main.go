package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/nutriscan/backend/internal/importer"
	"github.com/nutriscan/backend/internal/infrastructure/store"
)

func main() {
	var (
		dbPath    = flag.String("db", "data/foods.db", "path to the SQLite database")
		inputPath = flag.String("input", "", "path to the bulk FDC JSON dataset (required)")
		clear     = flag.Bool("clear", false, "drop existing rows before importing")
		batchSize = flag.Int("batch", 1000, "insert batch size")
		maxFoods  = flag.Int("limit", 0, "cap on imported foods, 0 means no cap")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		log.Fatal("missing required -input flag")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	s, err := store.Open(*dbPath, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("db", *dbPath), zap.Error(err))
	}

	imp := importer.New(s, logger)
	n, err := imp.Run(context.Background(), *inputPath, importer.Options{
		Clear:     *clear,
		BatchSize: *batchSize,
		MaxFoods:  *maxFoods,
	})
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	count, err := s.Count(context.Background())
	if err != nil {
		logger.Fatal("failed to count foods", zap.Error(err))
	}
	logger.Info("import complete", zap.Int("imported", n), zap.Int64("total_foods", count))
}
