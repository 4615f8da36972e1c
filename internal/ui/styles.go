package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("214") // Amber
	colorSecondary = lipgloss.Color("244") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSurface   = lipgloss.Color("236")
)

// HeroTitle style for the application name.
var HeroTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary)

// HeroTagline style for the line under the name.
var HeroTagline = lipgloss.NewStyle().
	Foreground(colorSecondary)

// Header style for the whole top block.
var Header = lipgloss.NewStyle().
	Background(colorSurface).
	Padding(1, 2)

// NavTab style for an inactive pane tab.
var NavTab = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 2)

// NavTabActive style for the focused pane tab.
var NavTabActive = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Bold(true).
	Underline(true).
	Padding(0, 2)

// NavTabDisabled style for a tab with nothing behind it yet.
var NavTabDisabled = lipgloss.NewStyle().
	Foreground(lipgloss.Color("237")).
	Padding(0, 2)

// Body style for the pane area.
var Body = lipgloss.NewStyle().
	Padding(1, 2)

// Footer style for the copyright line.
var Footer = lipgloss.NewStyle().
	Foreground(colorMuted).
	Align(lipgloss.Center)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorSurface).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// DebugPanel style for the debug overlay container.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle style for section headers in the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// DebugErrorStyle highlights failed events in the debug overlay.
var DebugErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("203"))
