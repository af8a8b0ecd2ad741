package models

import "fmt"

// FieldSelection identifies the field the user clicked on the map.
// Immutable; a new click produces a new selection.
type FieldSelection struct {
	Latitude  float64
	Longitude float64
	CropCode  int
	CropName  string
	CountyID  string
	Acres     float64 // acres, meaningful only when HasAcres
	HasAcres  bool
}

// AcreageDisplay formats acreage to two decimal places, or "N/A" when
// the source feature carried no usable acreage value.
func (s FieldSelection) AcreageDisplay() string {
	if !s.HasAcres {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", s.Acres)
}

// CropHistoryEntry records which crop a field carried in a given year.
type CropHistoryEntry struct {
	Year     int
	CropName string
	CropCode int
	Acres    float64
	HasAcres bool
}

// CropSuggestion is an alternative-crop recommendation from the
// analysis service, ranked by score.
type CropSuggestion struct {
	Name   string
	Reason string
	Score  float64
}

// FieldAnalysisResult bundles everything derived for one completed
// analysis fetch. Replaced wholesale on the next fetch, never mutated.
type FieldAnalysisResult struct {
	Selection FieldSelection
	Soil      *SoilSample
	Health    *HealthAssessment
	Texture   TextureClass
	Plan      []FertilizerRecommendation
	History   map[int]CropHistoryEntry
	Crops     []CropSuggestion
}

// AddressSuggestion is one ranked candidate from the geocoding search.
type AddressSuggestion struct {
	DisplayName string
	Latitude    float64
	Longitude   float64
	RankScore   int
}
