package agronomy

import (
	"fmt"

	"github.com/croplens/crop-terminal/internal/models"
)

// Deductions applied by AssessHealth. Each check is independent.
const (
	acidicDeduction   = 15
	alkalineDeduction = 15
	lowSOCDeduction   = 20
	lowNDeduction     = 15
)

// AssessHealth scores a soil sample from 100 down, recording an issue
// for every deduction and a strength for checks that pass. A nil sample
// returns nil: "no data" must stay distinguishable from a zero score.
func AssessHealth(soil *models.SoilSample) *models.HealthAssessment {
	if soil == nil {
		return nil
	}

	a := &models.HealthAssessment{Score: 100}

	// A zero pH means the measurement was absent upstream; it is
	// neither acidic nor optimal, so the pH rules are skipped, same
	// as PlanFertilizer's lime rule.
	switch {
	case soil.PH <= 0:
	case soil.PH < 6.0:
		a.Score -= acidicDeduction
		a.Issues = append(a.Issues, models.SoilIssue{
			Message:  fmt.Sprintf("Acidic Soil (pH %.1f)", soil.PH),
			Severity: models.SeverityMedium,
		})
	case soil.PH > 7.5:
		a.Score -= alkalineDeduction
		a.Issues = append(a.Issues, models.SoilIssue{
			Message:  fmt.Sprintf("Alkaline Soil (pH %.1f)", soil.PH),
			Severity: models.SeverityMedium,
		})
	default:
		a.Strengths = append(a.Strengths, "pH is in optimal range")
	}

	if soil.SOC < 15 {
		a.Score -= lowSOCDeduction
		a.Issues = append(a.Issues, models.SoilIssue{
			Message:  "Low organic matter",
			Severity: models.SeverityHigh,
		})
	} else {
		a.Strengths = append(a.Strengths, "Good organic matter")
	}

	// No strength recorded for adequate nitrogen.
	if soil.Nitrogen < 2.0 {
		a.Score -= lowNDeduction
		a.Issues = append(a.Issues, models.SoilIssue{
			Message:  "Low Nitrogen",
			Severity: models.SeverityMedium,
		})
	}

	if a.Score < 0 {
		a.Score = 0
	}
	return a
}

// ScoreLabel maps a health score to its qualitative bucket. The lower
// bounds are exclusive: exactly 75 is "Fair", exactly 50 is "Poor".
func ScoreLabel(score float64) string {
	switch {
	case score > 75:
		return "Excellent"
	case score > 50:
		return "Fair"
	default:
		return "Poor"
	}
}
