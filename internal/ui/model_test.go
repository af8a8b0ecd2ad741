package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/croplens/crop-terminal/internal/models"
)

func typeString(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, char := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{char}}
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func TestNewModel(t *testing.T) {
	m := NewModel(Config{})

	if !m.searchInput.Focused() {
		t.Error("NewModel() search input should be focused")
	}
	if m.view.spanLat <= 0 || m.view.spanLon <= 0 {
		t.Errorf("NewModel() viewport spans = %v/%v, want positive", m.view.spanLat, m.view.spanLon)
	}
	if m.selection != nil || m.result != nil {
		t.Error("NewModel() should start with no selection or result")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := NewModel(Config{})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	if m.width != 120 {
		t.Errorf("After WindowSizeMsg, width = %d, want 120", m.width)
	}
	if m.height != 40 {
		t.Errorf("After WindowSizeMsg, height = %d, want 40", m.height)
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m := NewModel(Config{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected Ctrl+C to return quit command")
	}
}

func TestTextInputHandling(t *testing.T) {
	m := NewModel(Config{})

	m, _ = typeString(t, m, "Ames")
	if m.searchInput.Value() != "Ames" {
		t.Errorf("search input = %q, want 'Ames'", m.searchInput.Value())
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(Model)
	if m.searchInput.Value() != "Ame" {
		t.Errorf("search input after backspace = %q, want 'Ame'", m.searchInput.Value())
	}
}

func TestModel_View_InitialLoading(t *testing.T) {
	m := NewModel(Config{})

	if view := m.View(); view != "Loading..." {
		t.Errorf("View() before window size = %q, want 'Loading...'", view)
	}
}

func TestModel_View_Smoke(t *testing.T) {
	m := NewModel(Config{})
	m.width = 120
	m.height = 40

	if view := m.View(); view == "" {
		t.Error("View() returned empty string with no selection")
	}

	m.selection = &models.FieldSelection{
		Latitude: 42.5, Longitude: -92.5,
		CropCode: 1, CropName: "Corn", CountyID: "19169",
		Acres: 152.3, HasAcres: true,
	}
	m.result = &models.FieldAnalysisResult{
		Selection: *m.selection,
		Soil:      &models.SoilSample{PH: 6.5, SOC: 20, Nitrogen: 2.5, Sand: 35, Silt: 40, Clay: 25},
		Health:    &models.HealthAssessment{Score: 85, Strengths: []string{"Good organic matter"}},
		Texture:   models.TextureLoam,
		Plan: []models.FertilizerRecommendation{
			{Nutrient: "Nitrogen", Priority: models.PriorityHigh, AmountRange: "80-100 lbs/ac",
				Fertilizer: "Urea (46-0-0)", Current: "1.5", Target: "3.5", Timing: "Split application at planting"},
		},
		History: map[int]models.CropHistoryEntry{
			2026: {Year: 2026, CropName: "Corn", CropCode: 1, Acres: 152.3, HasAcres: true},
			2025: {Year: 2025, CropName: "Soybeans", CropCode: 5},
		},
		Crops: []models.CropSuggestion{{Name: "Winter Wheat", Reason: "Suits loam texture", Score: 0.8}},
	}

	view := m.View()
	for _, want := range []string{"Corn", "Loam", "Nitrogen", "2026", "Winter Wheat", "score 0.80"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_View_ErrorNotice(t *testing.T) {
	m := NewModel(Config{})
	m.width = 120
	m.height = 40
	m.err = errors.New("analysis request failed: status 503")

	if view := m.View(); !strings.Contains(view, "Analysis unavailable") {
		t.Error("View() should surface the analysis error notice")
	}
}
