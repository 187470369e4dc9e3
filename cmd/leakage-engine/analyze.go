package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leakwatch/leakage-engine/internal/alerts"
	"github.com/leakwatch/leakage-engine/internal/classify"
	"github.com/leakwatch/leakage-engine/internal/config"
	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/engine"
	"github.com/leakwatch/leakage-engine/internal/services"
	"github.com/leakwatch/leakage-engine/internal/utils"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		sheet     string
		rulesPath string
		compact   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a CSV or XLSX file and print the leakage report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], sheet, rulesPath, compact)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name for XLSX input (default: first sheet)")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Alert rule pack to evaluate against the report")
	cmd.Flags().BoolVar(&compact, "compact", false, "Emit compact JSON instead of indented output")
	return cmd
}

func runAnalyze(ctx context.Context, path, sheet, rulesPath string, compact bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)

	classifier, err := classify.Load(cfg.Keywords.Path)
	if err != nil {
		return fmt.Errorf("load keyword pack: %w", err)
	}
	if rulesPath == "" {
		rulesPath = cfg.Alerts.RulesPath
	}
	rules, err := alerts.LoadRules(rulesPath)
	if err != nil {
		return fmt.Errorf("load alert rules: %w", err)
	}

	ds, err := dataset.LoadFile(path, sheet)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	eng := engine.New(logger, classifier)
	service := services.NewAnalysisService(logger, eng, rules, cfg.Analysis)
	result, err := service.AnalyzeDataset(ctx, ds)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
