package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/aluiziolira/titlecheck/compare"
	"github.com/aluiziolira/titlecheck/config"
	"github.com/aluiziolira/titlecheck/models"
	"github.com/aluiziolira/titlecheck/report"
	"github.com/aluiziolira/titlecheck/scraper"
	"github.com/aluiziolira/titlecheck/sheet"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input       string        `arg:"" help:"Path to the spreadsheet with expected values (rows from 2: url, title, h1)."`
	Mirror      string        `arg:"" help:"Base URL of the mirror site to compare against."`
	Groups      string        `short:"g" placeholder:"\"/path1 /path2\"" help:"Space-separated path prefixes; only the first URL under each prefix is checked."`
	Output      string        `short:"o" default:"${output}" env:"TITLECHECK_OUTPUT" help:"Report file path."`
	Format      string        `default:"${format}" enum:"xlsx,csv,json,dual" env:"TITLECHECK_FORMAT" help:"Report format: xlsx, csv, json, or dual."`
	Timeout     time.Duration `default:"${timeout}" env:"TITLECHECK_TIMEOUT" help:"Per-page fetch timeout; 0 waits indefinitely."`
	CacheSize   int           `default:"${cache_size}" env:"TITLECHECK_CACHE_SIZE" help:"Pages kept in the in-run cache; 0 disables it."`
	UserAgent   string        `default:"${user_agent}" env:"TITLECHECK_USER_AGENT" help:"User-Agent header sent to the mirror."`
	MetricsAddr string        `env:"TITLECHECK_METRICS_ADDR" help:"Prometheus metrics listen address (e.g. :9090)."`
	Verbose     bool          `short:"v" help:"Enable verbose logging."`
}

// Main represents the program.
type Main struct {
	// Transport replaces the HTTP transport of the fetcher when set.
	Transport http.RoundTripper
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defaults := config.DefaultConfig()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("titlecheck"),
		kong.Description("Compare page titles and first headings on a mirror against a spreadsheet of expected values."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"output":     defaults.OutputFile,
			"format":     defaults.OutputFormat,
			"timeout":    defaults.Timeout.String(),
			"cache_size": fmt.Sprint(defaults.CacheSize),
			"user_agent": defaults.UserAgent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger, level := newLogger(stdout, cli.Verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := buildConfig(cli)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return m.run(ctx, cfg, logger, stdout)
}

func buildConfig(cli *CLI) *config.Config {
	cfg := config.DefaultConfig()
	cfg.InputFile = cli.Input
	cfg.MirrorURL = cli.Mirror
	cfg.GroupPaths = config.ParseGroupPaths(cli.Groups)
	cfg.OutputFile = cli.Output
	cfg.OutputFormat = strings.ToLower(cli.Format)
	cfg.Timeout = cli.Timeout
	cfg.CacheSize = cli.CacheSize
	cfg.UserAgent = cli.UserAgent
	cfg.MetricsAddr = cli.MetricsAddr
	cfg.Verbose = cli.Verbose
	return cfg
}

func (m *Main) run(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	logger.Info("reading sheet", slog.String("path", cfg.InputFile))
	records, err := sheet.ReadExpected(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("read expected records: %w", err)
	}

	metrics := scraper.NewMetrics()
	fetcher, err := scraper.NewFetcher(cfg, metrics)
	if err != nil {
		return fmt.Errorf("initialising fetcher: %w", err)
	}
	if m.Transport != nil {
		fetcher.WithTransport(m.Transport)
	}

	if cfg.MetricsAddr != "" {
		server := startMetricsServer(cfg.MetricsAddr, metrics, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown failed", slog.Any("error", err))
			}
		}()
	}

	comparator := compare.New(fetcher)
	comparator.Recorder = metrics
	comparator.Classify = scraper.ErrorType
	comparator.Logger = logger

	logger.Info("checking urls",
		slog.Int("records", len(records)),
		slog.String("mirror", cfg.MirrorBase()),
		slog.Any("groups", cfg.GroupPaths),
	)
	discrepancies, err := comparator.Compare(ctx, records, cfg.MirrorBase(), cfg.GroupPaths)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	logger.Info("writing report", slog.String("path", cfg.OutputFile), slog.Int("rows", len(discrepancies)))
	if err := writeReport(cfg, discrepancies); err != nil {
		return err
	}

	stats := comparator.Stats()
	stats.CacheHits = fetcher.CacheHits()
	printSummary(stdout, stats, len(discrepancies), cfg.OutputFile)
	return nil
}

func writeReport(cfg *config.Config, discrepancies []models.Discrepancy) error {
	writer, err := createWriter(cfg.OutputFormat, cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	if err := writer.Write(discrepancies); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	if err := writer.Validate(); err != nil {
		return fmt.Errorf("output validation failed: %w", err)
	}
	return nil
}

func createWriter(format, filename string) (report.OutputWriter, error) {
	switch format {
	case "xlsx":
		return report.NewXLSXWriter(filename)
	case "csv":
		return report.NewCSVWriter(filename)
	case "json":
		return report.NewJSONWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".json"
		return report.NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func startMetricsServer(addr string, metrics *scraper.Metrics, logger *slog.Logger) *http.Server {
	server := &http.Server{
		Addr:    addr,
		Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()
	logger.Info("metrics server enabled", slog.String("addr", addr))
	return server
}
