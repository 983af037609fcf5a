package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/unidoc/unioffice/common/license"

	"contract-analyzer/internal/companies"
	"contract-analyzer/internal/config"
	"contract-analyzer/internal/extract"
	"contract-analyzer/internal/llm"
	"contract-analyzer/internal/parse"
	"contract-analyzer/internal/report"
	"contract-analyzer/internal/scan"
	"contract-analyzer/internal/textfilter"
)

const pingTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	logger = logger.With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	if cfg.ProcessingPath == "" {
		logger.Error("PROCESSING_PATH is required")
		os.Exit(1)
	}
	if cfg.UnidocLicenseKey != "" {
		if err := license.SetMeteredKey(cfg.UnidocLicenseKey); err != nil {
			logger.Warn("unidoc license activation failed, docx extraction will use raw fallback", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	client, err := llm.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("init provider: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		return fmt.Errorf("provider %s unreachable: %w", cfg.Provider, err)
	}
	logger.Info("provider ready", "provider", cfg.Provider)

	comps, err := companies.Discover(cfg.ProcessingPath, logger)
	if err != nil {
		return err
	}

	writer := report.NewWriter(cfg.SummaryPath, logger)
	reportPath, err := writer.Create(fmt.Sprintf("contract_analysis_%s.xlsx", time.Now().Format("20060102_150405")))
	if err != nil {
		return err
	}

	extractor := extract.New(logger, cfg.TessdataPrefix)
	scanner := scan.New(logger, extractor)
	parser := parse.New(logger)
	var filter *textfilter.Filter
	if cfg.FilterEnabled {
		filter = textfilter.New(cfg.SearchTerms, cfg.FilterWindowSize, cfg.FilterMergeGap, logger)
	}

	var succeeded, failed int
	errorRow := 2
	for i, comp := range comps {
		if ctx.Err() != nil {
			logger.Warn("run interrupted", "completed", i, "remaining", len(comps)-i)
			return ctx.Err()
		}

		companyLog := logger.With("company", comp.Name)
		companyLog.Info("analyzing company", "progress", fmt.Sprintf("%d/%d", i+1, len(comps)))

		rec, fail := analyzeCompany(ctx, cfg, comp, scanner, filter, client, parser)
		if fail != nil {
			companyLog.Error("analysis failed, recording defaults", "step", fail.Step, "error", fail.Err)
			if err := writer.AppendFailure(reportPath, *fail, errorRow); err != nil {
				return fmt.Errorf("write error summary for %s: %w", comp.Name, err)
			}
			errorRow++
			failed++
		} else {
			succeeded++
		}

		// Row for every company, even on failure, so the report is complete.
		if err := writer.AppendRow(reportPath, rec, i+2); err != nil {
			return fmt.Errorf("write row for %s: %w", comp.Name, err)
		}
	}

	logger.Info("run complete",
		"companies", len(comps),
		"succeeded", succeeded,
		"failed", failed,
		"report", reportPath)
	return nil
}

// analyzeCompany runs the pipeline for one company. On failure it returns
// the defaulted record together with a Failure describing which step broke,
// so the run can record it on the errors sheet and keep going.
func analyzeCompany(ctx context.Context, cfg config.Config, comp companies.Company, scanner *scan.Scanner, filter *textfilter.Filter, client llm.Client, parser *parse.Parser) (parse.Record, *report.Failure) {
	res := scanner.Scan(comp.Path)
	if res.Stats.Successful == 0 {
		return parse.Defaults(comp.Name), &report.Failure{
			Company:    comp.Name,
			Step:       "document extraction",
			Err:        fmt.Sprintf("no readable documents in %s", comp.Path),
			FailedDocs: res.FailedDocs,
			Stats:      res.Stats,
		}
	}

	text := res.Combined()
	if filter != nil {
		if filtered := filter.Apply(text); strings.TrimSpace(filtered) != "" {
			text = filtered
		}
	}

	llmCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.LLMTimeoutSeconds)*time.Second)
	defer cancel()
	raw, err := client.Analyze(llmCtx, llm.Input{
		CompanyName: comp.Name,
		Text:        text,
		SearchTerms: cfg.SearchTerms,
		Stats:       res.Stats,
		FailedDocs:  res.FailedDocs,
	})
	if err != nil {
		return parse.Defaults(comp.Name), &report.Failure{
			Company:    comp.Name,
			Step:       "ai analysis",
			Err:        err.Error(),
			FailedDocs: res.FailedDocs,
			Stats:      res.Stats,
		}
	}

	return parser.Parse(raw, comp.Name), nil
}
