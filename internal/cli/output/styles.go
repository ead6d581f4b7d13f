package output

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
)

// Styles holds the lipgloss styles used by text mode.
type Styles struct {
	Header1       lipgloss.Style
	Header2       lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Formula       lipgloss.Style
	Weight        lipgloss.Style
	Success       lipgloss.Style
	Warning       lipgloss.Style
	Error         lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// NewStyles builds the style set bound to lr so colour output follows the
// renderer's terminal profile.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1:       lr.NewStyle().Bold(true).Foreground(colorPrimary),
		Header2:       lr.NewStyle().Bold(true),
		Bold:          lr.NewStyle().Bold(true),
		Muted:         lr.NewStyle().Foreground(colorMuted),
		Formula:       lr.NewStyle().Bold(true).Foreground(colorPrimary),
		Weight:        lr.NewStyle().Foreground(colorSuccess),
		Success:       lr.NewStyle().Foreground(colorSuccess),
		Warning:       lr.NewStyle().Foreground(colorWarning),
		Error:         lr.NewStyle().Foreground(colorError),
		StatusSuccess: lr.NewStyle().Foreground(colorSuccess).SetString("✓"),
		StatusFailed:  lr.NewStyle().Foreground(colorError).SetString("✗"),
	}
}
