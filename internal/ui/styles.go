package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
)

// TitleStyle for the application header.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// ActiveTab style for the selected view tab.
var ActiveTab = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// InactiveTab style for unselected view tabs.
var InactiveTab = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// TabCount style for the per-view totals inside tabs.
var TabCount = lipgloss.NewStyle().
	Foreground(colorHighlight)

// SelectedCard style for the currently highlighted item card.
var SelectedCard = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalCard style for unselected, unviewed items.
var NormalCard = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// ViewedCard style for items already viewed.
var ViewedCard = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// CardDetail style for the price and metadata line under the name.
var CardDetail = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 1)

// SavedMarker style for the saved-flag indicator.
var SavedMarker = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// PriceStyle for the price fragment of the detail line.
var PriceStyle = lipgloss.NewStyle().
	Foreground(colorSuccess)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// NoticeStyle for transient failure notices.
var NoticeStyle = lipgloss.NewStyle().
	Foreground(colorWarning).
	Bold(true).
	Padding(0, 1)

// EmptyStyle for empty-state messages.
var EmptyStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// SearchBar style for the search input row.
var SearchBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// SearchPrompt style for the "/" prompt.
var SearchPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// FormLabel style for login and settings field labels.
var FormLabel = lipgloss.NewStyle().
	Foreground(colorSecondary)

// FormError style for inline form errors.
var FormError = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true)

// FormHeading style for the login and settings screen headings.
var FormHeading = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginBottom(1)
