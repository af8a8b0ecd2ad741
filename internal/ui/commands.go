package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/croplens/crop-terminal/internal/analysis"
	"github.com/croplens/crop-terminal/internal/cropmap"
	"github.com/croplens/crop-terminal/internal/geocoding"
	"github.com/croplens/crop-terminal/internal/models"
)

const (
	debounceDelay = 400 * time.Millisecond
	minQueryLen   = 3

	searchTimeout   = 10 * time.Second
	analysisTimeout = 30 * time.Second
)

// scheduleSearch arms the debounce timer for a query. The seq pins the
// timer to the keystroke that armed it.
func scheduleSearch(seq int, query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: query}
	})
}

// runSearch performs the geocoding lookup. Lookup failures degrade to
// an empty suggestion list; the search box is not an error surface.
func runSearch(searcher *geocoding.Searcher, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		suggestions, err := searcher.Search(ctx, query)
		if err != nil {
			zap.L().Debug("address search failed", zap.String("query", query), zap.Error(err))
			return suggestionsMsg{seq: seq}
		}
		return suggestionsMsg{seq: seq, suggestions: suggestions}
	}
}

// resolveClick looks up the field under a clicked coordinate. Misses
// and lookup errors both resolve to an empty selection.
func resolveClick(store *cropmap.Store, lat, lon float64) tea.Cmd {
	return func() tea.Msg {
		props, err := store.FieldAt(lat, lon)
		if err != nil {
			zap.L().Warn("field lookup failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
			return selectionMsg{}
		}
		if props == nil {
			return selectionMsg{}
		}

		sel, err := props.Selection(lat, lon)
		if err != nil {
			zap.L().Warn("rejecting field selection", zap.Error(err))
			return selectionMsg{}
		}
		return selectionMsg{selection: sel}
	}
}

// runAnalysis fetches the field analysis for a selection.
func runAnalysis(client *analysis.Client, sel models.FieldSelection, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()

		result, err := client.Analyze(ctx, sel)
		return analysisMsg{seq: seq, result: result, err: err}
	}
}

// loadFeatures fetches the field boundaries intersecting the viewport.
func loadFeatures(store *cropmap.Store, v mapViewport) tea.Cmd {
	return func() tea.Msg {
		minLat, maxLat, minLon, maxLon := v.bounds()
		features, err := store.FieldsInView(minLat, maxLat, minLon, maxLon)
		return featuresMsg{features: features, err: err}
	}
}

// locateAddress resolves the startup --address flag to a coordinate.
func locateAddress(searcher *geocoding.Searcher, address string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		loc, err := searcher.Locate(ctx, address)
		if err != nil {
			return navigateMsg{err: err}
		}
		if loc == nil {
			return navigateMsg{}
		}
		return navigateMsg{lat: loc.Latitude, lon: loc.Longitude, found: true}
	}
}
