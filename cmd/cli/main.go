package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gapscan/internal/analyzer"
	"gapscan/internal/config"
	"gapscan/internal/crawler"
	"gapscan/internal/ioformats"
	"gapscan/internal/models"
	"gapscan/internal/report"
	"gapscan/internal/scoring"
	"gapscan/internal/storage"
	"gapscan/pkg/logger"
)

var (
	cfgFile string

	analyzeOwnURL      string
	analyzeCompetitors []string
	analyzeInputFile   string
	analyzeBusiness    string
	analyzeOutput      string
	analyzeFormat      string
	analyzeSave        bool

	exportID     string
	exportFormat string
	exportOutput string
)

var rootCmd = &cobra.Command{
	Use:   "gapscan",
	Short: "Keyword gap analysis for your website against competitors",
	Long: `gapscan extracts the search queries competitor pages target, compares
them against your own pages, and scores each missing keyword as a content
opportunity with priority tiers and recommendations.`,
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a gap analysis against one or more competitors",
	RunE:  runAnalyze,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored report to csv, xlsx or json",
	RunE:  runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")

	analyzeCmd.Flags().StringVar(&analyzeOwnURL, "own", "", "own website URL (required)")
	analyzeCmd.Flags().StringSliceVar(&analyzeCompetitors, "competitors", nil, "competitor URLs, comma separated")
	analyzeCmd.Flags().StringVar(&analyzeInputFile, "input", "", "competitor URL file (csv with 'url' column or ndjson)")
	analyzeCmd.Flags().StringVar(&analyzeBusiness, "business", "", "business context YAML file")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "output file (default stdout JSON)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "output format: json, csv or xlsx")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the report to the local database")
	analyzeCmd.MarkFlagRequired("own")
	rootCmd.AddCommand(analyzeCmd)

	exportCmd.Flags().StringVar(&exportID, "id", "", "report ID (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: json, csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "output file (required)")
	exportCmd.MarkFlagRequired("id")
	exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	competitors := analyzeCompetitors
	if analyzeInputFile != "" {
		fromFile, err := ioformats.ReadURLs(analyzeInputFile)
		if err != nil {
			return fmt.Errorf("read competitor file: %w", err)
		}
		competitors = append(competitors, fromFile...)
	}
	if len(competitors) == 0 {
		return fmt.Errorf("no competitors given: use --competitors or --input")
	}

	var bctx *models.BusinessContext
	if analyzeBusiness != "" {
		bctx, err = loadBusinessContext(analyzeBusiness)
		if err != nil {
			return err
		}
	}

	client := crawler.NewHTTPClient(cfg.Crawler.Timeout.Std(), cfg.Crawler.DialTimeout.Std(), cfg.Crawler.MaxBodySize, cfg.Crawler.RequestDelay.Std())
	engine := analyzer.New(client, scoring.NewScorer(cfg.Scoring.Weights), log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := engine.Analyze(ctx, analyzeOwnURL, competitors, bctx)
	if err != nil {
		return err
	}

	if analyzeSave {
		db, err := storage.NewDatabase(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Initialize(); err != nil {
			return err
		}
		id, err := db.SaveResult(result)
		if err != nil {
			return err
		}
		log.Info().Str("report_id", id).Msg("report saved")
	}

	format, err := outputFormat(analyzeFormat, analyzeOutput)
	if err != nil {
		return err
	}
	if analyzeOutput == "" {
		return ioformats.WriteJSON(os.Stdout, result)
	}
	exp := report.NewExporter(format, analyzeOutput)
	if err := exp.Export(result); err != nil {
		return err
	}
	log.Info().Str("path", analyzeOutput).Msg("report written")
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	db, err := storage.NewDatabase(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Initialize(); err != nil {
		return err
	}

	result, err := db.GetResult(exportID)
	if err != nil {
		return fmt.Errorf("load report %s: %w", exportID, err)
	}

	exp := report.NewExporter(report.ExportFormat(strings.ToLower(exportFormat)), exportOutput)
	return exp.Export(result)
}

// outputFormat resolves the --format flag against --out. Only JSON can go
// to stdout; csv and xlsx need a file path.
func outputFormat(formatFlag, outFlag string) (report.ExportFormat, error) {
	format := report.ExportFormat(strings.ToLower(formatFlag))
	if outFlag == "" && format != report.FormatJSON {
		return "", fmt.Errorf("--format %s requires --out", formatFlag)
	}
	return format, nil
}

func loadBusinessContext(path string) (*models.BusinessContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read business context: %w", err)
	}
	var bctx models.BusinessContext
	if err := yaml.Unmarshal(data, &bctx); err != nil {
		return nil, fmt.Errorf("parse business context: %w", err)
	}
	return &bctx, nil
}
