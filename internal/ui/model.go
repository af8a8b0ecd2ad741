package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/croplens/crop-terminal/internal/analysis"
	"github.com/croplens/crop-terminal/internal/cropmap"
	"github.com/croplens/crop-terminal/internal/geocoding"
	"github.com/croplens/crop-terminal/internal/models"
)

const (
	footerHeight = 3
	minMapWidth  = 24
	minMapHeight = 8
	panStep      = 0.125 // fraction of span per arrow key
)

// Config carries the dependencies the model needs. The field store is
// provisioned before the program starts, never inside the event loop.
type Config struct {
	Store    *cropmap.Store
	Searcher *geocoding.Searcher
	Analysis *analysis.Client

	// StartAddress, when set, is geocoded on startup and the map
	// opens centered on the result.
	StartAddress string
}

// Model represents the application's state
type Model struct {
	store    *cropmap.Store
	searcher *geocoding.Searcher
	analysis *analysis.Client

	width  int
	height int

	// Search
	searchInput textinput.Model
	lastQuery   string
	searchSeq   int
	suggestions []models.AddressSuggestion
	sugCursor   int

	// Map
	view      mapViewport
	features  []cropmap.Feature
	hasMarker bool
	markerLat float64
	markerLon float64

	// Analysis
	analysisSeq int
	loading     bool
	selection   *models.FieldSelection
	result      *models.FieldAnalysisResult
	err         error
	spinner     spinner.Model

	startAddress string
}

// NewModel creates a new application model
func NewModel(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Search an address (e.g. 123 Main St, Ames IA)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		store:        cfg.Store,
		searcher:     cfg.Searcher,
		analysis:     cfg.Analysis,
		searchInput:  ti,
		view:         defaultViewport(),
		spinner:      s,
		startAddress: cfg.StartAddress,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, loadFeatures(m.store, m.view)}
	if m.startAddress != "" {
		cmds = append(cmds, locateAddress(m.searcher, m.startAddress))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case debounceMsg:
		// A newer keystroke superseded this timer.
		if msg.seq != m.searchSeq {
			return m, nil
		}
		return m, runSearch(m.searcher, msg.query, msg.seq)

	case suggestionsMsg:
		// Out-of-order response for an abandoned query.
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.suggestions = msg.suggestions
		m.sugCursor = 0
		return m, nil

	case selectionMsg:
		if msg.selection == nil {
			return m, nil
		}
		m.selection = msg.selection
		m.analysisSeq++
		m.loading = true
		return m, tea.Batch(
			runAnalysis(m.analysis, *msg.selection, m.analysisSeq),
			m.spinner.Tick,
		)

	case analysisMsg:
		// A newer click superseded this fetch.
		if msg.seq != m.analysisSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// Keep the previous result on screen; only the
			// notice changes.
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.result = msg.result
		return m, nil

	case featuresMsg:
		if msg.err != nil {
			zap.L().Warn("loading field boundaries failed", zap.Error(msg.err))
			return m, nil
		}
		m.features = msg.features
		return m, nil

	case navigateMsg:
		if msg.err != nil || !msg.found {
			if msg.err != nil {
				zap.L().Warn("start address lookup failed", zap.Error(msg.err))
			}
			return m, nil
		}
		m.view.recenter(msg.lat, msg.lon)
		m.hasMarker = true
		m.markerLat = msg.lat
		m.markerLon = msg.lon
		return m, loadFeatures(m.store, m.view)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleKey routes keyboard input. The search box keeps focus the
// whole session; arrow keys drive either the suggestion dropdown or
// the map depending on whether suggestions are showing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if len(m.suggestions) > 0 {
			m.suggestions = nil
			m.sugCursor = 0
		}
		return m, nil

	case "up":
		if len(m.suggestions) > 0 {
			if m.sugCursor > 0 {
				m.sugCursor--
			}
			return m, nil
		}
		m.view.pan(panStep, 0)
		return m, loadFeatures(m.store, m.view)

	case "down":
		if len(m.suggestions) > 0 {
			if m.sugCursor < len(m.suggestions)-1 {
				m.sugCursor++
			}
			return m, nil
		}
		m.view.pan(-panStep, 0)
		return m, loadFeatures(m.store, m.view)

	case "left":
		m.view.pan(0, -panStep)
		return m, loadFeatures(m.store, m.view)

	case "right":
		m.view.pan(0, panStep)
		return m, loadFeatures(m.store, m.view)

	case "pgup":
		m.view.zoom(0.5)
		return m, loadFeatures(m.store, m.view)

	case "pgdown":
		m.view.zoom(2)
		return m, loadFeatures(m.store, m.view)

	case "enter":
		if len(m.suggestions) > 0 {
			return m.selectSuggestion(m.suggestions[m.sugCursor])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m.afterInputChange(cmd)
}

// afterInputChange runs the debounce bookkeeping once a keystroke has
// reached the text input. Every edit bumps searchSeq, orphaning any
// pending timer or in-flight lookup for the previous text.
func (m Model) afterInputChange(inputCmd tea.Cmd) (tea.Model, tea.Cmd) {
	query := m.searchInput.Value()
	if query == m.lastQuery {
		return m, inputCmd
	}
	m.lastQuery = query
	m.searchSeq++

	if len(strings.TrimSpace(query)) < minQueryLen {
		m.suggestions = nil
		m.sugCursor = 0
		return m, inputCmd
	}
	return m, tea.Batch(inputCmd, scheduleSearch(m.searchSeq, query))
}

// selectSuggestion commits a dropdown pick: the map recenters on the
// result, a marker drops, and the input shows the short address label.
func (m Model) selectSuggestion(s models.AddressSuggestion) (tea.Model, tea.Cmd) {
	label := geocoding.PrimaryLabel(s.DisplayName)
	m.searchInput.SetValue(label)
	m.searchInput.CursorEnd()
	m.lastQuery = label
	m.searchSeq++
	m.suggestions = nil
	m.sugCursor = 0

	m.hasMarker = true
	m.markerLat = s.Latitude
	m.markerLon = s.Longitude
	m.view.recenter(s.Latitude, s.Longitude)
	return m, loadFeatures(m.store, m.view)
}

// handleMouse maps a left click inside the map pane to a coordinate
// and kicks off the field lookup.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	lat, lon, ok := m.mapCoordAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	return m, resolveClick(m.store, lat, lon)
}

// headerHeight is the number of screen rows above the map pane. The
// click-to-coordinate mapping depends on it, so it must track exactly
// what the view renders.
func (m Model) headerHeight() int {
	h := 3 // bordered search box
	if len(m.suggestions) > 0 {
		h += len(m.suggestions) + 2 // bordered dropdown
	}
	return h
}

// mapSize returns the outer size of the map pane, border included.
func (m Model) mapSize() (w, h int) {
	w = m.width * 3 / 5
	if w < minMapWidth {
		w = minMapWidth
	}
	h = m.height - m.headerHeight() - footerHeight
	if h < minMapHeight {
		h = minMapHeight
	}
	return w, h
}

// mapCoordAt translates terminal cell coordinates into a geographic
// coordinate, or ok=false when the cell is outside the map interior.
func (m Model) mapCoordAt(x, y int) (lat, lon float64, ok bool) {
	w, h := m.mapSize()
	cols, rows := w-2, h-2

	cx := x - 1
	cy := y - m.headerHeight() - 1
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return 0, 0, false
	}
	lat, lon = m.view.cellToCoord(cx, cy, cols, rows)
	return lat, lon, true
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.viewSearch())

	mapW, _ := m.mapSize()
	detailW := m.width - mapW - 4
	if detailW < 20 {
		detailW = 20
	}
	sections = append(sections, lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderMapPane(),
		m.renderDetailPane(detailW),
	))

	sections = append(sections, m.viewFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewSearch renders the search box and, when present, the suggestion
// dropdown directly below it.
func (m Model) viewSearch() string {
	box := searchBoxStyle.Width(64).Render(m.searchInput.View())
	if len(m.suggestions) == 0 {
		return box
	}

	rows := make([]string, 0, len(m.suggestions))
	for i, s := range m.suggestions {
		line := s.DisplayName
		if len(line) > 72 {
			line = line[:69] + "..."
		}
		if i == m.sugCursor {
			rows = append(rows, dropdownCursorStyle.Render(line))
		} else {
			rows = append(rows, line)
		}
	}
	dropdown := dropdownStyle.Width(74).Render(strings.Join(rows, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, box, dropdown)
}

// viewFooter renders the help line, prefixed by the analysis error
// notice when the last fetch failed.
func (m Model) viewFooter() string {
	help := "Type to search · ↑/↓ pick · Enter go · Arrows pan · PgUp/PgDn zoom · Click a field · Ctrl+C quit"
	if m.err != nil {
		notice := errorStyle.Render("✗ Analysis unavailable: " + m.err.Error())
		return lipgloss.JoinVertical(lipgloss.Left, notice, helpStyle.Render(help))
	}
	return helpStyle.Render(help)
}
