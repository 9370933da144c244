package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mahendraputra/idx-radar/internal/api"
	"github.com/mahendraputra/idx-radar/internal/config"
	"github.com/mahendraputra/idx-radar/internal/derive"
	"github.com/mahendraputra/idx-radar/internal/feed"
	"github.com/mahendraputra/idx-radar/internal/models"
	"github.com/mahendraputra/idx-radar/pkg/logger"
)

// One-shot report: fetch the feeds, derive the dataset, and write the
// ranked top-N table to CSV and XLSX files.
func main() {
	outDir := flag.String("out", ".", "output directory")
	topN := flag.Int("n", 25, "number of rows in the ranked table")
	metricName := flag.String("metric", string(models.MetricScore), "ranking metric")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	metric := models.RankMetric(*metricName)
	if !metric.Valid() {
		logger.Fatal("Unknown ranking metric",
			logger.String("metric", *metricName),
			logger.ErrorField(models.ErrInvalidMetric),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Feed.FetchTimeout)
	defer cancel()

	client := feed.NewClient(cfg.Feed)

	records, err := client.FetchRecords(ctx)
	if err != nil {
		logger.Fatal("Failed to fetch primary feed", logger.ErrorField(err))
	}
	if len(records) == 0 {
		logger.Fatal("Nothing to report", logger.ErrorField(models.ErrEmptyDataset))
	}

	sectors, err := client.FetchSectors(ctx)
	if err != nil {
		logger.Warn("Sector feed unavailable, continuing unsegmented", logger.ErrorField(err))
		sectors = map[string]string{}
	}

	deriver := derive.NewDeriver(cfg.Score)
	enriched := deriver.DeriveAll(records, sectors)
	latest := derive.LatestPerStock(enriched)
	rankings := derive.RankTopN(latest, metric, *topN)

	csvPath := filepath.Join(*outDir, "toplist.csv")
	if err := writeFile(csvPath, func(f *os.File) error {
		return api.WriteToplistCSV(f, rankings)
	}); err != nil {
		logger.Fatal("Failed to write CSV report", logger.ErrorField(err))
	}

	xlsxPath := filepath.Join(*outDir, "toplist.xlsx")
	if err := writeFile(xlsxPath, func(f *os.File) error {
		return api.WriteToplistXLSX(f, rankings)
	}); err != nil {
		logger.Fatal("Failed to write XLSX report", logger.ErrorField(err))
	}

	logger.Info("Report written",
		logger.String("csv", csvPath),
		logger.String("xlsx", xlsxPath),
		logger.Int("rows", len(rankings)),
	)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
