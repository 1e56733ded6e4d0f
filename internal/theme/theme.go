package theme

import (
	"github.com/atomicstack/mqt/internal/document"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	PreviewTitle          *lipgloss.Style
	PreviewBody           *lipgloss.Style
	PreviewBorder         *lipgloss.Style
	PreviewScroll         *lipgloss.Style
	TreeGuide             *lipgloss.Style
	HelpKey               *lipgloss.Style
	HelpSection           *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	PreviewTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PreviewBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	PreviewBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	PreviewScroll: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	TreeGuide: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	HelpKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	HelpSection: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true).Underline(true),
	),
}

var kindStyles = map[document.Kind]*lipgloss.Style{
	document.KindHeading:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)),
	document.KindList:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("2"))),
	document.KindItem:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("2"))),
	document.KindCode:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("6"))),
	document.KindLink:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("5"))),
	document.KindStrong:     ptr(lipgloss.NewStyle().Bold(true)),
	document.KindEmphasis:   ptr(lipgloss.NewStyle().Italic(true)),
	document.KindImage:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("3"))),
	document.KindMath:       ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("1"))),
	document.KindBlockquote: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("12"))),
	document.KindHR:         ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))),
}

var otherKind = ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("7")))

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Kind returns the style used for rows of the given node kind.
func Kind(kind document.Kind) *lipgloss.Style {
	if style, ok := kindStyles[kind]; ok {
		return style
	}
	return otherKind
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
