package models

// SoilSample holds normalized soil measurements for a field.
// Values are normalized once at the analysis client boundary; consumers
// may assume every field is populated (absent measurements become
// documented defaults or zero there, never here).
type SoilSample struct {
	PH       float64
	SOC      float64 // soil organic carbon, g/kg
	Nitrogen float64 // g/kg
	Sand     float64 // percent
	Silt     float64 // percent
	Clay     float64 // percent
}

// TextureClass is a coarse soil-composition category derived from sand
// and clay percentages.
type TextureClass string

const (
	TextureUnknown   TextureClass = "Unknown"
	TextureClay      TextureClass = "Clay"
	TextureSandyLoam TextureClass = "Sandy Loam"
	TextureLoam      TextureClass = "Loam"
)

// Severity grades a soil issue.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// SoilIssue is a single deduction recorded by the health assessment.
type SoilIssue struct {
	Message  string
	Severity Severity
}

// HealthAssessment is a 0-100 composite indicator derived from pH,
// organic carbon and nitrogen. A missing soil sample yields no
// assessment at all, never a zero score.
type HealthAssessment struct {
	Score     float64
	Issues    []SoilIssue
	Strengths []string
}

// Priority ranks a fertilizer recommendation.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
)

// FertilizerRecommendation is one entry of a fertilizer plan. Current
// and Target are display-ready strings formatted by the planner.
type FertilizerRecommendation struct {
	Nutrient    string
	Priority    Priority
	AmountRange string
	Fertilizer  string
	Current     string
	Target      string
	Timing      string
}
