package anomaly

// RiskLevel is the low/medium/high classification derived from a record's
// score by threshold comparison.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskThresholds holds the score cutoffs for risk classification:
// score > High is high risk, score > Medium is medium, anything else low.
type RiskThresholds struct {
	High   float64
	Medium float64
}

// The table and analytics views historically used different medium cutoffs
// (0.4 vs 0.3). They are kept as two named values rather than silently
// reconciled; High may be overridden by the riskThreshold setting.
var (
	TableThresholds     = RiskThresholds{High: 0.7, Medium: 0.4}
	AnalyticsThresholds = RiskThresholds{High: 0.7, Medium: 0.3}
)

// anomalyCutoff separates "anomaly" from "success" in the status filter.
const anomalyCutoff = 0.5

// Classify maps a score to a risk level. Out-of-range scores are tolerated:
// anything above High is high, anything at or below Medium is low.
func (t RiskThresholds) Classify(score float64) RiskLevel {
	switch {
	case score > t.High:
		return RiskHigh
	case score > t.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// WithHigh returns a copy of t with the high cutoff replaced. Values outside
// (0, 1] are ignored so a corrupt setting cannot disable high-risk counting.
func (t RiskThresholds) WithHigh(high float64) RiskThresholds {
	if high > 0 && high <= 1 {
		t.High = high
	}
	return t
}
