package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary = lipgloss.Color("#7FBF3F") // Crop green
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for high-severity issues
	colorWarning = lipgloss.Color("#FFD93D") // Yellow for medium severity
	colorSuccess = lipgloss.Color("#6BCF7F") // Green
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#5F875F") // Border green

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	dropdownCursorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorBorder)

	mapPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	detailPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// Issue severity styles
	issueHighStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	issueMediumStyle = lipgloss.NewStyle().
				Foreground(colorWarning).
				Bold(true)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginTop(1)

	emptyCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3A3A3A"))

	markerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)
)

// cropColors follows the USDA Cropland Data Layer palette for the most
// common cover codes; everything else renders in the fallback gray.
var cropColors = map[int]lipgloss.Color{
	1:   "#FFD300", // Corn
	2:   "#FF2626", // Cotton
	3:   "#00A8E2", // Rice
	4:   "#FF9E0A", // Sorghum
	5:   "#267000", // Soybeans
	6:   "#FFFF00", // Sunflower
	21:  "#E2007C", // Barley
	22:  "#896354", // Durum Wheat
	23:  "#D8B56B", // Spring Wheat
	24:  "#A57000", // Winter Wheat
	28:  "#6F0049", // Oats
	36:  "#FFA5E2", // Alfalfa
	37:  "#A5F28C", // Other Hay/Non Alfalfa
	41:  "#A800E2", // Sugarbeets
	42:  "#A50000", // Dry Beans
	43:  "#702600", // Potatoes
	53:  "#54FF00", // Peas
	61:  "#BFBF77", // Fallow/Idle Cropland
	176: "#E8FFBF", // Grassland/Pasture
}

const cropColorFallback = lipgloss.Color("#7A7A55")

func cropColor(code int) lipgloss.Color {
	if c, ok := cropColors[code]; ok {
		return c
	}
	return cropColorFallback
}
