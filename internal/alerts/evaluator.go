package alerts

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/leakwatch/leakage-engine/internal/models"
)

// equalityEpsilon is the float tolerance for equals / not_equals conditions.
const equalityEpsilon = 0.01

// Evaluate reports whether a metric value satisfies a threshold condition.
// Unknown conditions never match.
func Evaluate(value float64, condition models.AlertCondition, threshold float64) bool {
	switch condition {
	case models.ConditionGreaterThan:
		return value > threshold
	case models.ConditionLessThan:
		return value < threshold
	case models.ConditionEquals:
		return math.Abs(value-threshold) < equalityEpsilon
	case models.ConditionNotEquals:
		return math.Abs(value-threshold) >= equalityEpsilon
	default:
		return false
	}
}

// Evaluator checks rule packs against completed analysis runs. A malformed
// rule only costs itself: it is logged and skipped, never aborts evaluation.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator constructs an evaluator. A nil logger uses the default.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{logger: logger}
}

// EvaluateRules computes each rule's metric from the analysis and returns a
// triggered alert for every rule whose condition holds, in rule order.
func (e *Evaluator) EvaluateRules(rules []models.AlertRule, report models.LeakageReport, summary models.FinancialSummary) []models.TriggeredAlert {
	var triggered []models.TriggeredAlert
	for _, rule := range rules {
		if rule.Metric == "" {
			e.logger.Warn("skipping alert rule without a metric", slog.String("alert_id", rule.ID))
			continue
		}
		value := ComputeMetric(rule.Metric, report, summary)
		if !Evaluate(value, rule.Condition, rule.Threshold) {
			continue
		}
		formatted := FormatMetricValue(rule.Metric, value)
		triggered = append(triggered, models.TriggeredAlert{
			AlertID:        rule.ID,
			AlertName:      rule.Name,
			Metric:         rule.Metric,
			CurrentValue:   value,
			FormattedValue: formatted,
			Threshold:      rule.Threshold,
			Condition:      rule.Condition,
			Severity:       rule.Severity,
			Message:        alertMessage(rule, formatted),
		})
		e.logger.Info("alert triggered",
			slog.String("alert_id", rule.ID),
			slog.String("metric", rule.Metric),
			slog.String("value", formatted),
			slog.String("severity", string(rule.Severity)))
	}
	return triggered
}

func alertMessage(rule models.AlertRule, formattedValue string) string {
	condition := strings.ReplaceAll(string(rule.Condition), "_", " ")
	return fmt.Sprintf("Alert '%s' triggered!\nCurrent value: %s\nThreshold: %s %s",
		rule.Name, formattedValue, condition, FormatMetricValue(rule.Metric, rule.Threshold))
}
