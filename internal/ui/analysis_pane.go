package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/croplens/crop-terminal/internal/agronomy"
	"github.com/croplens/crop-terminal/internal/models"
)

// renderDetailPane renders the analysis column beside the map.
func (m Model) renderDetailPane(width int) string {
	var sections []string

	if m.selection == nil {
		sections = append(sections,
			titleStyle.Render("🌾 Field Analysis"),
			"",
			mutedStyle.Render("Click a field on the map to analyze it."),
		)
		return detailPaneStyle.Width(width).Render(strings.Join(sections, "\n"))
	}

	sections = append(sections, m.renderSelectionHeader())

	if m.loading {
		sections = append(sections, "", fmt.Sprintf("%s Analyzing field...", m.spinner.View()))
	}

	if m.result != nil {
		sections = append(sections,
			sectionHeaderStyle.Render("SOIL"),
			m.renderSoilSimple(),
			sectionHeaderStyle.Render("FIELD HEALTH"),
			m.renderHealthSimple(),
			sectionHeaderStyle.Render("FERTILIZER PLAN"),
			m.renderPlanSimple(),
			sectionHeaderStyle.Render("CROP HISTORY"),
			m.renderHistorySimple(),
			sectionHeaderStyle.Render("ALTERNATIVE CROPS"),
			m.renderCropsSimple(),
		)
	}

	return detailPaneStyle.Width(width).Render(strings.Join(sections, "\n"))
}

// renderSelectionHeader identifies the clicked field.
func (m Model) renderSelectionHeader() string {
	sel := m.selection
	lines := []string{
		titleStyle.Render(fmt.Sprintf("🌾 %s", sel.CropName)),
		mutedStyle.Render(fmt.Sprintf("%s ac · County %s", sel.AcreageDisplay(), sel.CountyID)),
		mutedStyle.Render(fmt.Sprintf("%.5f, %.5f", sel.Latitude, sel.Longitude)),
	}
	return strings.Join(lines, "\n")
}

// renderSoilSimple renders soil measurements and the texture class.
func (m Model) renderSoilSimple() string {
	soil := m.result.Soil
	if soil == nil {
		return mutedStyle.Render("No soil data available")
	}

	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("Texture:"), valueStyle.Render(string(m.result.Texture))),
		fmt.Sprintf("pH %.1f · SOC %.1f g/kg · N %.1f g/kg", soil.PH, soil.SOC, soil.Nitrogen),
		fmt.Sprintf("Sand %.0f%% · Silt %.0f%% · Clay %.0f%%", soil.Sand, soil.Silt, soil.Clay),
	}
	return strings.Join(lines, "\n")
}

// renderHealthSimple renders the health score with its issues and
// strengths.
func (m Model) renderHealthSimple() string {
	health := m.result.Health
	if health == nil {
		return mutedStyle.Render("No health assessment available")
	}

	label := agronomy.ScoreLabel(health.Score)
	scoreLine := scoreStyle(label).Render(fmt.Sprintf("%.0f/100 %s", health.Score, label))

	lines := []string{scoreLine}
	for _, issue := range health.Issues {
		lines = append(lines, fmt.Sprintf("  %s %s", severityStyle(issue.Severity).Render("▼"), issue.Message))
	}
	for _, s := range health.Strengths {
		lines = append(lines, fmt.Sprintf("  %s %s", successStyle.Render("▲"), s))
	}
	return strings.Join(lines, "\n")
}

// renderPlanSimple renders the fertilizer recommendations in priority
// order.
func (m Model) renderPlanSimple() string {
	plan := m.result.Plan
	if len(plan) == 0 {
		return successStyle.Render("✓ No amendments needed")
	}

	var lines []string
	for _, rec := range plan {
		prio := issueMediumStyle
		if rec.Priority == models.PriorityHigh {
			prio = issueHighStyle
		}
		lines = append(lines,
			fmt.Sprintf("%s %s — %s", prio.Render("["+string(rec.Priority)+"]"), rec.Nutrient, rec.Fertilizer),
			mutedStyle.Render(fmt.Sprintf("  %s · now %s, target %s · %s",
				rec.AmountRange, rec.Current, rec.Target, rec.Timing)),
		)
	}
	return strings.Join(lines, "\n")
}

// renderHistorySimple renders crop history newest-first.
func (m Model) renderHistorySimple() string {
	history := m.result.History
	if len(history) == 0 {
		return mutedStyle.Render("No crop history available")
	}

	years := make([]int, 0, len(history))
	for year := range history {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	var lines []string
	for _, year := range years {
		entry := history[year]
		line := fmt.Sprintf("%d: %s", year, entry.CropName)
		if entry.HasAcres {
			line += mutedStyle.Render(fmt.Sprintf(" (%.1f ac)", entry.Acres))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderCropsSimple renders the ranked alternative-crop suggestions.
func (m Model) renderCropsSimple() string {
	crops := m.result.Crops
	if len(crops) == 0 {
		return mutedStyle.Render("No suggestions available")
	}

	var lines []string
	for i, crop := range crops {
		line := fmt.Sprintf("%d. %s %s", i+1, crop.Name,
			mutedStyle.Render(fmt.Sprintf("(score %.2f)", crop.Score)))
		if crop.Reason != "" {
			line += mutedStyle.Render(" · " + crop.Reason)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func scoreStyle(label string) lipgloss.Style {
	switch label {
	case "Excellent":
		return successStyle.Bold(true)
	case "Fair":
		return issueMediumStyle
	default:
		return issueHighStyle
	}
}

func severityStyle(sev models.Severity) lipgloss.Style {
	if sev == models.SeverityHigh {
		return issueHighStyle
	}
	return issueMediumStyle
}
