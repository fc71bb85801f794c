package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gridstats/internal/config"
	"gridstats/internal/pipeline"
	"gridstats/internal/source"
	"gridstats/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cmd := os.Args[1]
	switch cmd {
	case "fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", "", "exact date YYYY-MM-DD")
		week := fs.Int("week", 0, "league week (Thursday through Monday)")
		season := fs.Int("season", cfg.Season, "season year")
		_ = fs.Parse(os.Args[2:])

		cfg.Season = *season
		window, err := makeWindow(*date, *week)
		must(err)

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		processor := pipeline.NewProcessor(source.NewClient(cfg), cfg, logger)
		report, err := processor.Run(context.Background(), window)
		must(err)

		if report.Selected == 0 {
			fmt.Printf("no games scheduled for %s in season %d\n", report.Window, report.Season)
			return
		}

		runID, err := db.InsertRun(report)
		must(err)
		fmt.Printf("run stored id=%d window=%s selected=%d succeeded=%d failed=%d\n",
			runID, report.Window, report.Selected, report.Succeeded(), len(report.Failures))
	case "export:xlsx", "export:csv":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runID := fs.Int64("runId", 0, "stored run id")
		out := fs.String("out", "", "output file path")
		_ = fs.Parse(os.Args[2:])
		if *runID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--runId and --out are required"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		records, err := db.ListRecords(*runID)
		must(err)
		if len(records) == 0 {
			must(fmt.Errorf("no records for runId=%d", *runID))
		}

		if cmd == "export:xlsx" {
			must(pipeline.ExportXLSX(records, *out))
		} else {
			must(pipeline.ExportCSV(records, *out))
		}
		fmt.Printf("exported %d records to %s\n", len(records), *out)
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", "", "exact date YYYY-MM-DD")
		week := fs.Int("week", 0, "league week (Thursday through Monday)")
		season := fs.Int("season", cfg.Season, "season year")
		out := fs.String("out", "", "output path (.xlsx or .csv); defaults under OUTPUT_DIR")
		_ = fs.Parse(os.Args[2:])

		cfg.Season = *season
		window, err := makeWindow(*date, *week)
		must(err)

		processor := pipeline.NewProcessor(source.NewClient(cfg), cfg, logger)
		report, err := processor.Run(context.Background(), window)
		must(err)

		if report.Selected == 0 {
			fmt.Printf("no games scheduled for %s in season %d\n", report.Window, report.Season)
			return
		}
		if len(report.Records) == 0 {
			must(fmt.Errorf("all %d games in %s failed", report.Selected, report.Window))
		}

		target := *out
		if strings.TrimSpace(target) == "" {
			target = filepath.Join(cfg.OutputDir, fmt.Sprintf("nfl_game_stats_%s.xlsx", report.Window))
		}
		if strings.HasSuffix(strings.ToLower(target), ".csv") {
			must(pipeline.ExportCSV(report.Records, target))
		} else {
			must(pipeline.ExportXLSX(report.Records, target))
		}
		fmt.Printf("run done window=%s records=%d failed=%d output=%s\n",
			report.Window, len(report.Records), len(report.Failures), target)
	default:
		usage()
		os.Exit(1)
	}
}

func makeWindow(date string, week int) (pipeline.Window, error) {
	switch {
	case date != "" && week > 0:
		return pipeline.Window{}, fmt.Errorf("--date and --week are mutually exclusive")
	case week > 0:
		return pipeline.WeekWindow(week), nil
	case date != "":
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return pipeline.Window{}, fmt.Errorf("invalid --date %q: %w", date, err)
		}
		return pipeline.DateWindow(parsed), nil
	default:
		return pipeline.Window{}, fmt.Errorf("--date or --week is required")
	}
}

func usage() {
	fmt.Println("usage: gridstats <command>")
	fmt.Println("commands:")
	fmt.Println("  fetch --date=YYYY-MM-DD | --week=N [--season=YYYY]")
	fmt.Println("  export:xlsx --runId=1 --out=./out/stats.xlsx")
	fmt.Println("  export:csv  --runId=1 --out=./out/stats.csv")
	fmt.Println("  run --date=YYYY-MM-DD | --week=N [--season=YYYY] [--out=...]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
