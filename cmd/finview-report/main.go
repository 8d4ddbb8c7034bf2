// finview-report generates one named report, writes it to the results
// directory, and optionally announces it on AMQP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"finview/internal/backend"
	"finview/internal/cli"
	"finview/internal/config"
	"finview/internal/core"
	"finview/internal/log"
	"finview/internal/market"
	"finview/internal/reports"
	"finview/internal/services"
	"finview/internal/views"
)

func main() {
	var (
		function = flag.String("function", "", "report to generate: home, events, spending_by_category, spending_by_weekday, spending_by_workday, transfers_to_individuals, phone_number_search, simple_search, investment_bank, cashback_categories")
		date     = flag.String("date", "", "reference date, DD.MM.YYYY (default: today)")
		period   = flag.String("period", "M", "events period tag: D, W, M, Y, ALL")
		category = flag.String("category", "", "category name for spending_by_category")
		query    = flag.String("query", "", "query for simple_search")
		month    = flag.String("month", "", "target month, MM.YYYY, for investment_bank and cashback_categories")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentReports)
	cfg := cli.LoadAndValidateConfig(logger)

	if *function == "" {
		logger.Error("No report function given, use -function")
		os.Exit(2)
	}

	ctx := context.Background()

	src, err := backend.NewFactory(logger).Create(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize transaction source", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer src.Close()

	txs, err := src.Reader.Load(ctx)
	if err != nil {
		logger.Error("Failed to load transactions", log.FieldError, err.Error())
		os.Exit(1)
	}

	reportSvc := reports.NewService(logger)
	now := time.Now()
	ref := reportSvc.ParseRefDate(ctx, *date, now)

	gen := generator{
		cfg:      cfg,
		logger:   logger,
		reports:  reportSvc,
		search:   services.NewSearchService(logger),
		analysis: services.NewAnalysisService(logger),
	}
	result, err := gen.build(ctx, txs, *function, ref, *period, *category, *query, *month)
	if err != nil {
		logger.Error("Report generation failed",
			log.FieldFunction, *function, log.FieldError, err.Error())
		os.Exit(1)
	}

	sink := reports.NewFileSink(cfg.ResultsDir, logger)
	path, err := sink.Write(ctx, reports.NewEnvelope(*function, result, now))
	if err != nil {
		logger.Error("Failed to write report", log.FieldError, err.Error())
		os.Exit(1)
	}

	publisher := cli.InitAMQP(logger, cfg)
	defer publisher.Close()
	if err := publisher.PublishReportGenerated(ctx, *function, path); err != nil {
		logger.Warn("Failed to publish report notification", log.FieldError, err.Error())
	}

	fmt.Println(path)
}

type generator struct {
	cfg      *config.Config
	logger   *log.Logger
	reports  *reports.Service
	search   *services.SearchService
	analysis *services.AnalysisService
}

func (g generator) build(ctx context.Context, txs []core.Transaction, function string, ref time.Time, periodTag, category, query, month string) (any, error) {
	switch function {
	case "home":
		return g.views().Home(ctx, ref, txs), nil
	case "events":
		period, err := core.ParsePeriod(periodTag)
		if err != nil {
			g.logger.Warn("Unknown period tag, using default",
				log.FieldPeriod, periodTag, log.FieldError, err.Error())
		}
		return g.views().Events(ctx, ref, period, txs), nil
	case "spending_by_category":
		if category == "" {
			return nil, fmt.Errorf("spending_by_category needs -category")
		}
		return g.reports.SpendingByCategory(ctx, txs, category, ref), nil
	case "spending_by_weekday":
		return g.reports.SpendingByWeekday(ctx, txs, ref), nil
	case "spending_by_workday":
		return g.reports.SpendingByWorkday(ctx, txs, ref), nil
	case "transfers_to_individuals":
		return g.search.TransfersToIndividuals(ctx, txs), nil
	case "phone_number_search":
		return g.search.ByPhoneNumber(ctx, txs), nil
	case "simple_search":
		if query == "" {
			return nil, fmt.Errorf("simple_search needs -query")
		}
		return g.search.Simple(ctx, query, txs), nil
	case "investment_bank":
		if month == "" {
			return nil, fmt.Errorf("investment_bank needs -month MM.YYYY")
		}
		total, err := g.analysis.InvestmentBank(ctx, month, txs)
		if err != nil {
			return nil, err
		}
		return map[string]any{"month": month, "total_savings": total}, nil
	case "cashback_categories":
		if month == "" {
			return nil, fmt.Errorf("cashback_categories needs -month MM.YYYY")
		}
		target, err := time.Parse(services.MonthLayout, month)
		if err != nil {
			return nil, fmt.Errorf("parse month %q: %w", month, err)
		}
		return g.analysis.AnalyzeCashbackCategories(ctx, txs, target.Year(), int(target.Month())), nil
	default:
		return nil, fmt.Errorf("unknown report function %q", function)
	}
}

// views wires the dashboard assembler with live market lookups. Built
// lazily because only two of the report functions need market data.
func (g generator) views() *views.Service {
	settings := market.LoadSettings(g.cfg.UserSettingsPath, g.logger)
	rates := market.NewCurrencyClient(g.cfg.CurrencyAPIURL, g.cfg.FetchTimeout, g.logger)
	stocks := market.NewStockClient(g.cfg.StockAPIURL, g.cfg.StockAPIKey, g.cfg.FetchTimeout, g.logger)
	prices := market.NewPriceCache(g.cfg.StockCachePath, stocks, g.logger)
	return views.NewService(settings, rates, prices, g.cfg.TopTransactions, g.logger)
}
