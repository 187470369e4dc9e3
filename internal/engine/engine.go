package engine

import (
	"log/slog"
	"sort"

	"github.com/leakwatch/leakage-engine/internal/analyzers"
	"github.com/leakwatch/leakage-engine/internal/classify"
	"github.com/leakwatch/leakage-engine/internal/dataset"
	"github.com/leakwatch/leakage-engine/internal/models"
)

// Engine orchestrates one leakage analysis run: classify columns once, fan the
// role map out to every category analyzer, and assemble the ranked report.
// The engine holds no per-run state, so a single instance is safe for
// concurrent use across datasets.
type Engine struct {
	logger     *slog.Logger
	classifier *classify.Classifier
	analyzers  []analyzers.Analyzer
}

// New constructs an engine. A nil classifier uses the built-in keyword tables
// and an empty analyzer list uses the full canonical set.
func New(logger *slog.Logger, classifier *classify.Classifier, detectors ...analyzers.Analyzer) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if classifier == nil {
		classifier = classify.Default()
	}
	if len(detectors) == 0 {
		detectors = analyzers.All()
	}
	return &Engine{logger: logger, classifier: classifier, analyzers: detectors}
}

// BuildReport runs the full analysis over one immutable dataset snapshot.
// A misbehaving analyzer only costs its own category: panics are contained per
// analyzer so real-world spreadsheets with odd shapes still yield every other
// category's findings.
func (e *Engine) BuildReport(ds *dataset.Dataset) models.LeakageReport {
	roles := e.classifyRoles(ds)

	var items []models.Finding
	for _, analyzer := range e.analyzers {
		items = append(items, e.runAnalyzer(analyzer, ds, roles)...)
	}

	total := 0.0
	for _, item := range items {
		total += item.Amount
	}

	// Highest impact first; stable so equal amounts keep analyzer order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount > items[j].Amount
	})

	return models.LeakageReport{
		TotalLeakages:   len(items),
		TotalAmount:     total,
		Items:           items,
		ColumnsAnalyzed: roles,
	}
}

// Classify exposes the effective role mapping for one dataset, with the
// cost/revenue disambiguation already applied.
func (e *Engine) Classify(ds *dataset.Dataset) models.ColumnRoles {
	return e.classifyRoles(ds)
}

// classifyRoles runs the classifier and strips revenue-claimed columns from
// the cost role. Terms like "payment" appear in both keyword lists, and
// counting a column as both revenue and cost would double-count it.
func (e *Engine) classifyRoles(ds *dataset.Dataset) models.ColumnRoles {
	roles := e.classifier.Classify(ds.ColumnNames())

	revenue := make(map[string]struct{})
	for _, col := range roles[models.RoleRevenue] {
		revenue[col] = struct{}{}
	}
	var costs []string
	for _, col := range roles[models.RoleCost] {
		if _, claimed := revenue[col]; !claimed {
			costs = append(costs, col)
		}
	}
	roles[models.RoleCost] = costs
	return roles
}

func (e *Engine) runAnalyzer(a analyzers.Analyzer, ds *dataset.Dataset, roles models.ColumnRoles) (findings []models.Finding) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("analyzer failed, skipping category",
				slog.String("analyzer", a.Name()),
				slog.Any("panic", r))
			findings = nil
		}
	}()
	return a.Analyze(ds, roles)
}
