package alerts

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leakwatch/leakage-engine/internal/models"
)

// rulePack is the YAML shape of an alert rule file.
type rulePack struct {
	Rules []models.AlertRule `yaml:"rules"`
}

// LoadRules reads an alert rule pack from a YAML file. An empty path or a
// missing file yields no rules; deployments opt into alerting by providing
// the pack.
func LoadRules(path string) ([]models.AlertRule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read alert rules: %w", err)
	}
	var pack rulePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse alert rules: %w", err)
	}
	for i, rule := range pack.Rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("alert rule %d (%q) has no id", i, rule.Name)
		}
		if rule.Metric == "" {
			return nil, fmt.Errorf("alert rule %q has no metric", rule.ID)
		}
		switch rule.Condition {
		case models.ConditionGreaterThan, models.ConditionLessThan, models.ConditionEquals, models.ConditionNotEquals:
		default:
			return nil, fmt.Errorf("alert rule %q has unknown condition %q", rule.ID, rule.Condition)
		}
	}
	return pack.Rules, nil
}
