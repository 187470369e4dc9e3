package models

// AlertCondition names the comparison an alert rule applies to a metric.
type AlertCondition string

const (
	ConditionGreaterThan AlertCondition = "greater_than"
	ConditionLessThan    AlertCondition = "less_than"
	ConditionEquals      AlertCondition = "equals"
	ConditionNotEquals   AlertCondition = "not_equals"
)

// AlertRule is a user-defined threshold rule against a named metric. Rules are
// owned by the caller; the engine only evaluates them.
type AlertRule struct {
	ID        string         `json:"alert_id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Metric    string         `json:"metric" yaml:"metric"`
	Condition AlertCondition `json:"condition" yaml:"condition"`
	Threshold float64        `json:"threshold" yaml:"threshold"`
	Severity  Severity       `json:"severity" yaml:"severity"`
}

// TriggeredAlert is the event emitted when a rule's condition holds for the
// current analysis. Persistence and notification fan-out stay with the caller.
type TriggeredAlert struct {
	AlertID        string         `json:"alert_id"`
	AlertName      string         `json:"alert_name"`
	Metric         string         `json:"metric"`
	CurrentValue   float64        `json:"current_value"`
	FormattedValue string         `json:"formatted_value"`
	Threshold      float64        `json:"threshold"`
	Condition      AlertCondition `json:"condition"`
	Severity       Severity       `json:"severity"`
	Message        string         `json:"message"`
}
