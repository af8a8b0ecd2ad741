// Package analysis fetches raw soil data for a field from the remote
// analysis service and turns it into a complete FieldAnalysisResult.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/croplens/crop-terminal/internal/agronomy"
	"github.com/croplens/crop-terminal/internal/models"
)

// Defaults substituted when the service returns no soil object at all.
const (
	defaultPH       = 6.5
	defaultSOC      = 20
	defaultNitrogen = 2.5
	defaultClay     = 25
	defaultSand     = 35
)

// StatusError reports a non-2xx response from the analysis service.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analysis service returned status %d", e.Status)
}

// Client talks to the field analysis endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates an analysis client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "CropTerminal/1.0 (github.com/croplens/crop-terminal)",
	}
}

// analysisResponse mirrors the service payload. Every section and
// every numeric field may be absent; pointers keep "missing" apart
// from zero until normalization.
type analysisResponse struct {
	Soil *struct {
		PH       *float64 `json:"ph"`
		SOC      *float64 `json:"soc"`
		Nitrogen *float64 `json:"nitrogen"`
		Sand     *float64 `json:"sand"`
		Silt     *float64 `json:"silt"`
		Clay     *float64 `json:"clay"`
	} `json:"soil"`
	History map[string]struct {
		Crop  string   `json:"crop"`
		Code  int      `json:"code"`
		Acres *float64 `json:"acres"`
	} `json:"history"`
	Recommendations []struct {
		Name   string  `json:"name"`
		Reason string  `json:"reason"`
		Score  float64 `json:"score"`
	} `json:"recommendations"`
}

// Analyze fetches and normalizes soil data for the selected field and
// computes the derived metrics in the same result. Non-2xx responses
// surface as *StatusError; the caller shows them and does not retry.
func (c *Client) Analyze(ctx context.Context, sel models.FieldSelection) (*models.FieldAnalysisResult, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(sel.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(sel.Longitude, 'f', -1, 64))

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode}
	}

	var payload analysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}

	soil := normalizeSoil(payload)
	result := &models.FieldAnalysisResult{
		Selection: sel,
		Soil:      soil,
		Health:    agronomy.AssessHealth(soil),
		Texture:   agronomy.ClassifyTexture(soil.Sand, soil.Clay),
		Plan:      agronomy.PlanFertilizer(soil),
		History:   buildHistory(payload, sel),
		Crops:     buildCrops(payload),
	}

	zap.L().Debug("analysis complete",
		zap.Float64("lat", sel.Latitude),
		zap.Float64("lon", sel.Longitude),
		zap.String("texture", string(result.Texture)),
		zap.Int("plan_entries", len(result.Plan)))

	return result, nil
}

// normalizeSoil applies the documented defaults. A wholly missing soil
// object becomes the default sample; within a present object, absent
// numeric fields read as zero and absent silt is completed from sand
// and clay.
func normalizeSoil(payload analysisResponse) *models.SoilSample {
	if payload.Soil == nil {
		sand, clay := float64(defaultSand), float64(defaultClay)
		return &models.SoilSample{
			PH:       defaultPH,
			SOC:      defaultSOC,
			Nitrogen: defaultNitrogen,
			Sand:     sand,
			Clay:     clay,
			Silt:     completeSilt(sand, clay),
		}
	}

	s := &models.SoilSample{
		PH:       deref(payload.Soil.PH),
		SOC:      deref(payload.Soil.SOC),
		Nitrogen: deref(payload.Soil.Nitrogen),
		Sand:     deref(payload.Soil.Sand),
		Clay:     deref(payload.Soil.Clay),
	}
	if payload.Soil.Silt != nil {
		s.Silt = *payload.Soil.Silt
	} else {
		s.Silt = completeSilt(s.Sand, s.Clay)
	}
	return s
}

// completeSilt fills the missing fraction so the three shares total
// roughly 100, clamped at zero for overfull sand+clay readings.
func completeSilt(sand, clay float64) float64 {
	silt := 100 - sand - clay
	if silt < 0 {
		return 0
	}
	return silt
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// buildHistory converts backend-supplied years and injects the entry
// for the current year from the selection, overwriting any entry the
// backend already had for it.
func buildHistory(payload analysisResponse, sel models.FieldSelection) map[int]models.CropHistoryEntry {
	history := make(map[int]models.CropHistoryEntry)

	for yearStr, entry := range payload.History {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			zap.L().Debug("skipping malformed history year", zap.String("year", yearStr))
			continue
		}
		h := models.CropHistoryEntry{Year: year, CropName: entry.Crop, CropCode: entry.Code}
		if entry.Acres != nil {
			h.Acres = *entry.Acres
			h.HasAcres = true
		}
		history[year] = h
	}

	year := time.Now().Year()
	history[year] = models.CropHistoryEntry{
		Year:     year,
		CropName: sel.CropName,
		CropCode: sel.CropCode,
		Acres:    sel.Acres,
		HasAcres: sel.HasAcres,
	}

	return history
}

func buildCrops(payload analysisResponse) []models.CropSuggestion {
	crops := make([]models.CropSuggestion, 0, len(payload.Recommendations))
	for _, rec := range payload.Recommendations {
		crops = append(crops, models.CropSuggestion{
			Name:   rec.Name,
			Reason: rec.Reason,
			Score:  rec.Score,
		})
	}
	return crops
}
