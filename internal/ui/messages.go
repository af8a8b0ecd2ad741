package ui

import (
	"github.com/croplens/crop-terminal/internal/cropmap"
	"github.com/croplens/crop-terminal/internal/models"
)

// debounceMsg fires when a search debounce window elapses. seq is the
// search sequence captured at schedule time; a stale seq means further
// keystrokes arrived and the message must be dropped.
type debounceMsg struct {
	seq   int
	query string
}

// suggestionsMsg carries ranked address suggestions for a completed
// lookup. A failed lookup degrades to an empty suggestion list.
type suggestionsMsg struct {
	seq         int
	suggestions []models.AddressSuggestion
}

// selectionMsg resolves a map click. A nil selection means the click
// hit empty map space.
type selectionMsg struct {
	selection *models.FieldSelection
}

// analysisMsg carries one completed analysis fetch, successful or not.
type analysisMsg struct {
	seq    int
	result *models.FieldAnalysisResult
	err    error
}

// featuresMsg carries the field boundaries for the current viewport.
type featuresMsg struct {
	features []cropmap.Feature
	err      error
}

// navigateMsg resolves a startup --address lookup. found is false when
// the geocoder returned no match.
type navigateMsg struct {
	lat   float64
	lon   float64
	found bool
	err   error
}
