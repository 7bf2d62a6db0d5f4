package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/rates"
	"github.com/fenggwsx/GeoChat/internal/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		color.Error.Printf("ratesync: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadImporterConfig()
	if err != nil {
		return err
	}

	start := flag.String("start", rates.DefaultStart, "First day to import (YYYY-MM-DD)")
	end := flag.String("end", rates.DefaultEnd, "Last day to import (YYYY-MM-DD)")
	dbPath := flag.String("db", cfg.DatabasePath, "Path to the SQLite database")
	quiet := flag.Bool("quiet", false, "Only print the summary line")
	flag.Parse()

	from, to, err := rates.ParseRange(*start, *end)
	if err != nil {
		return err
	}

	log := logs.GetLoggerFromString(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.NewStore(config.DatabaseConfig{Path: *dbPath})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() { _ = store.Close() }()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	importer := rates.NewImporter(store, store, rates.NewFetcher(cfg.Rates()), log)
	result, err := importer.Import(ctx, from, to)
	if err != nil {
		return err
	}

	if !*quiet {
		renderRates(result)
	}
	header := color.New(color.BgBlack, color.FgGreen).Render(" DONE ")
	fmt.Printf("%s Stored %d base exchange rate records (%d fetched for %d currencies, %s to %s)\n",
		header, result.Inserted, result.Fetched, result.Symbols,
		result.Start.Format(rates.DateLayout), result.End.Format(rates.DateLayout))
	return nil
}

func renderRates(result rates.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Base", "Target", "Rate"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, rate := range result.Rates {
		table.Append([]string{
			rate.Date.Format(rates.DateLayout),
			rate.Base,
			rate.Target,
			strconv.FormatFloat(rate.Rate, 'f', 6, 64),
		})
	}
	table.Render()
}
