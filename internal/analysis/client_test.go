package analysis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/croplens/crop-terminal/internal/models"
)

func testSelection() models.FieldSelection {
	return models.FieldSelection{
		Latitude:  41.878,
		Longitude: -93.097,
		CropCode:  1,
		CropName:  "Corn",
		CountyID:  "19169",
		Acres:     152.3,
		HasAcres:  true,
	}
}

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL)
	return client, server
}

func TestNewClient(t *testing.T) {
	client := NewClient("https://api.example.com/v1/analyze")

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", client.httpClient.Timeout)
	}
	if client.userAgent == "" {
		t.Error("userAgent should not be empty")
	}
}

func TestAnalyze_RequestParameters(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") != "41.878" {
			t.Errorf("lat = %q, want 41.878", r.URL.Query().Get("lat"))
		}
		if r.URL.Query().Get("lon") != "-93.097" {
			t.Errorf("lon = %q, want -93.097", r.URL.Query().Get("lon"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header not set")
		}
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	if _, err := client.Analyze(context.Background(), testSelection()); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
}

func TestAnalyze_FullPayload(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"soil": {"ph": 5.5, "soc": 12, "nitrogen": 1.5, "sand": 30, "silt": 45, "clay": 25},
			"history": {"2023": {"crop": "Soybeans", "code": 5, "acres": 150.1}},
			"recommendations": [{"name": "Soybeans", "reason": "Nitrogen fixation", "score": 0.9}]
		}`))
	})
	defer server.Close()

	result, err := client.Analyze(context.Background(), testSelection())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.Soil.PH != 5.5 || result.Soil.Silt != 45 {
		t.Errorf("soil = %+v", result.Soil)
	}
	if result.Texture != models.TextureLoam {
		t.Errorf("Texture = %s, want Loam", result.Texture)
	}
	if result.Health == nil {
		t.Fatal("Health is nil")
	}
	// 100 - 15 (acidic) - 20 (low SOC) - 15 (low N) = 50
	if result.Health.Score != 50 {
		t.Errorf("Score = %.0f, want 50", result.Health.Score)
	}
	// Low nitrogen and acidic soil, in that order.
	if len(result.Plan) != 2 {
		t.Fatalf("len(Plan) = %d, want 2", len(result.Plan))
	}
	if result.Plan[0].Nutrient != "Nitrogen" || result.Plan[1].Nutrient != "pH" {
		t.Errorf("plan order = [%s, %s]", result.Plan[0].Nutrient, result.Plan[1].Nutrient)
	}
	if len(result.Crops) != 1 || result.Crops[0].Name != "Soybeans" {
		t.Errorf("Crops = %+v", result.Crops)
	}
	if entry, ok := result.History[2023]; !ok || entry.CropName != "Soybeans" {
		t.Errorf("History[2023] = %+v", entry)
	}
}

func TestAnalyze_MissingSoilUsesDefaults(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"history": {}, "recommendations": []}`))
	})
	defer server.Close()

	result, err := client.Analyze(context.Background(), testSelection())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	soil := result.Soil
	if soil.PH != 6.5 || soil.SOC != 20 || soil.Nitrogen != 2.5 {
		t.Errorf("defaults not applied: %+v", soil)
	}
	if soil.Sand != 35 || soil.Clay != 25 {
		t.Errorf("default composition = sand %.0f clay %.0f, want 35/25", soil.Sand, soil.Clay)
	}
	if soil.Silt != 40 {
		t.Errorf("Silt = %.0f, want 40 (100-35-25)", soil.Silt)
	}
	if result.Health == nil {
		t.Error("Health is nil for default soil")
	}
}

func TestAnalyze_SiltCompletion(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantSilt float64
	}{
		{"missing silt", `{"soil": {"ph": 6.5, "soc": 20, "nitrogen": 2.5, "sand": 30, "clay": 20}}`, 50},
		{"overfull clamps to zero", `{"soil": {"ph": 6.5, "soc": 20, "nitrogen": 2.5, "sand": 70, "clay": 40}}`, 0},
		{"absent sand and clay", `{"soil": {"ph": 6.5, "soc": 20, "nitrogen": 2.5}}`, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			defer server.Close()

			result, err := client.Analyze(context.Background(), testSelection())
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if result.Soil.Silt != tt.wantSilt {
				t.Errorf("Silt = %.0f, want %.0f", result.Soil.Silt, tt.wantSilt)
			}
		})
	}
}

func TestAnalyze_CurrentYearInjected(t *testing.T) {
	year := time.Now().Year()
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		// Backend claims a different crop for the current year; the
		// selection must win.
		w.Write([]byte(`{"history": {"` + time.Now().Format("2006") + `": {"crop": "Cotton", "code": 2}}}`))
	})
	defer server.Close()

	result, err := client.Analyze(context.Background(), testSelection())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	entry, ok := result.History[year]
	if !ok {
		t.Fatalf("no history entry for current year %d", year)
	}
	if entry.CropName != "Corn" || entry.CropCode != 1 {
		t.Errorf("History[%d] = %+v, want the selection's crop", year, entry)
	}
	if !entry.HasAcres || entry.Acres != 152.3 {
		t.Errorf("History[%d] acres = %+v, want 152.3", year, entry)
	}
}

func TestAnalyze_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"404 not found", http.StatusNotFound},
		{"500 server error", http.StatusInternalServerError},
		{"503 unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			})
			defer server.Close()

			_, err := client.Analyze(context.Background(), testSelection())
			if err == nil {
				t.Fatal("Analyze() error = nil, want StatusError")
			}

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("error = %v, want *StatusError", err)
			}
			if statusErr.Status != tt.statusCode {
				t.Errorf("Status = %d, want %d", statusErr.Status, tt.statusCode)
			}
		})
	}
}

func TestAnalyze_MalformedPayload(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})
	defer server.Close()

	if _, err := client.Analyze(context.Background(), testSelection()); err == nil {
		t.Error("Analyze() error = nil, want decode error")
	}
}
