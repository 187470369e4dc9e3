package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leakwatch/leakage-engine/internal/alerts"
	"github.com/leakwatch/leakage-engine/internal/config"
	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/engine"
	"github.com/leakwatch/leakage-engine/internal/metrics"
	"github.com/leakwatch/leakage-engine/internal/models"
	"github.com/leakwatch/leakage-engine/internal/utils"
	"github.com/leakwatch/leakage-engine/pkg/cache"
)

// AnalysisResult bundles everything one analysis run produces.
type AnalysisResult struct {
	Report          models.LeakageReport    `json:"report"`
	Summary         models.FinancialSummary `json:"summary"`
	TriggeredAlerts []models.TriggeredAlert `json:"triggered_alerts,omitempty"`
	Duration        time.Duration           `json:"-"`
}

// AnalysisService is the facade the serving surfaces call. It owns the engine,
// the standing alert rules, and run-level instrumentation.
type AnalysisService struct {
	logger    *slog.Logger
	engine    *engine.Engine
	evaluator *alerts.Evaluator
	rules     []models.AlertRule
	limits    config.AnalysisConfig
	latencies *utils.LatencyTracker
	reports   *cache.Cache[AnalysisResult]
}

// NewAnalysisService constructs the analysis facade. rules are the standing
// alert rules evaluated after every run; callers may pass extra per-request
// rules to EvaluateAlerts.
func NewAnalysisService(logger *slog.Logger, eng *engine.Engine, rules []models.AlertRule, limits config.AnalysisConfig) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if eng == nil {
		eng = engine.New(logger, nil)
	}
	return &AnalysisService{
		logger:    logger,
		engine:    eng,
		evaluator: alerts.NewEvaluator(logger),
		rules:     rules,
		limits:    limits,
		latencies: utils.NewLatencyTracker(1024),
		reports:   cache.New[AnalysisResult](),
	}
}

// AnalyzeRecords builds a dataset from raw rows and runs the full analysis.
func (s *AnalysisService) AnalyzeRecords(ctx context.Context, columns []string, rows [][]any) (AnalysisResult, error) {
	const op = "services.AnalyzeRecords"

	if len(columns) == 0 {
		return AnalysisResult{}, utils.NewInvalidError(op, "no columns supplied", nil)
	}
	if s.limits.MaxColumns > 0 && len(columns) > s.limits.MaxColumns {
		return AnalysisResult{}, utils.NewInvalidError(op,
			fmt.Sprintf("dataset has %d columns, limit is %d", len(columns), s.limits.MaxColumns), nil)
	}
	if s.limits.MaxRows > 0 && len(rows) > s.limits.MaxRows {
		return AnalysisResult{}, utils.NewInvalidError(op,
			fmt.Sprintf("dataset has %d rows, limit is %d", len(rows), s.limits.MaxRows), nil)
	}

	ds, err := dataset.FromRecords(columns, rows)
	if err != nil {
		return AnalysisResult{}, utils.NewInvalidError(op, "malformed dataset", err)
	}
	return s.AnalyzeDataset(ctx, ds)
}

// AnalyzeDataset runs the engine over a prepared dataset, evaluates standing
// alert rules, and records instrumentation.
func (s *AnalysisService) AnalyzeDataset(ctx context.Context, ds *dataset.Dataset) (AnalysisResult, error) {
	const op = "services.AnalyzeDataset"

	if err := ctx.Err(); err != nil {
		metrics.ObserveAnalysis(0, metrics.OutcomeError)
		return AnalysisResult{}, utils.NewAppError(op, "analysis aborted", err)
	}

	var fingerprint string
	if s.limits.CacheTTL > 0 {
		fingerprint = ds.Fingerprint()
		if cached, ok := s.reports.Get(fingerprint); ok {
			s.logger.Debug("analysis cache hit", slog.String("fingerprint", fingerprint))
			return cached, nil
		}
	}

	start := time.Now()
	report := s.engine.BuildReport(ds)
	summary := engine.Summarize(ds, report.ColumnsAnalyzed)
	duration := time.Since(start)

	s.latencies.Observe(duration)
	metrics.ObserveAnalysis(duration, metrics.OutcomeSuccess)
	for _, item := range report.Items {
		metrics.CountFinding(item.Category)
	}

	result := AnalysisResult{
		Report:   report,
		Summary:  summary,
		Duration: duration,
	}
	result.TriggeredAlerts = s.EvaluateAlerts(s.rules, report, summary)

	if fingerprint != "" {
		s.reports.Set(fingerprint, result, s.limits.CacheTTL)
	}

	s.logger.Info("analysis complete",
		slog.Int("rows", ds.RowCount()),
		slog.Int("columns", ds.ColumnCount()),
		slog.Int("findings", report.TotalLeakages),
		slog.Int("alerts", len(result.TriggeredAlerts)),
		slog.Duration("duration", duration))
	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		s.logger.Info("analysis latency",
			slog.Duration("p95", s.latencies.Percentile(95)),
			slog.Duration("mean", s.latencies.Mean()),
			slog.Int("samples", count))
	}

	return result, nil
}

// EvaluateAlerts runs a rule set against a completed analysis and counts the
// triggered alerts in the run metrics.
func (s *AnalysisService) EvaluateAlerts(rules []models.AlertRule, report models.LeakageReport, summary models.FinancialSummary) []models.TriggeredAlert {
	triggered := s.evaluator.EvaluateRules(rules, report, summary)
	for _, alert := range triggered {
		metrics.CountAlert(string(alert.Severity))
	}
	return triggered
}

// LatencyP95 returns the current p95 analysis latency.
func (s *AnalysisService) LatencyP95() time.Duration {
	if s.latencies == nil {
		return 0
	}
	return s.latencies.Percentile(95)
}
