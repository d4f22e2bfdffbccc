package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ===== Color Palette =====

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// ===== Public Styles =====

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorGray)
	StyleNumber    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

// ===== Internal Styles =====

var (
	styleIconSuccess = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	styleCached      = lipgloss.NewStyle().Foreground(colorDim)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCyan)
)

// ===== Icons =====

const (
	iconSuccess  = "✓"
	iconError    = "✗"
	iconWarning  = "!"
	iconArrow    = "›"
	iconCached   = "cached"
	iconComputed = "fresh"
)

// ===== Print Helpers =====

func printSuccess(msg string) {
	fmt.Printf("%s %s\n", styleIconSuccess.Render(iconSuccess), msg)
}

func printError(msg string) {
	fmt.Printf("%s %s\n", styleIconError.Render(iconError), msg)
}

func printWarning(msg string) {
	fmt.Printf("%s %s\n", styleIconWarning.Render(iconWarning), msg)
}

func printInfo(msg string) {
	fmt.Printf("%s %s\n", styleIconInfo.Render(iconArrow), msg)
}

func printDetail(msg string) {
	fmt.Printf("  %s\n", StyleDim.Render(msg))
}

func printFile(path string) {
	fmt.Printf("  %s %s\n", StyleDim.Render(iconArrow), StyleLink.Render(path))
}

func printKeyValue(key, value string) {
	k := StyleDim.Width(12).Render(key)
	fmt.Printf("  %s %s\n", k, StyleValue.Render(value))
}

// printStats prints a graph summary line with node and edge counts and
// whether the result came from cache.
func printStats(nodeCount, edgeCount int, cached bool) {
	nodes := fmt.Sprintf("%s nodes", StyleNumber.Render(fmt.Sprintf("%d", nodeCount)))
	edges := fmt.Sprintf("%s edges", StyleNumber.Render(fmt.Sprintf("%d", edgeCount)))
	source := styleComputed.Render(iconComputed)
	if cached {
		source = styleCached.Render(iconCached)
	}
	fmt.Printf("  %s %s · %s · %s\n", StyleDim.Render(iconArrow), nodes, edges, source)
}

func printNextStep(description, command string) {
	fmt.Printf("  %s %s %s\n", StyleDim.Render(iconArrow), description, styleCommand.Render(command))
}

func printInline(msg string) {
	fmt.Print(msg)
}

func printNewline() {
	fmt.Println()
}
