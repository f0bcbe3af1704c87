package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors adapt to light and dark backgrounds. Faint is only applied on dark
// backgrounds; faint text on light terminals is often illegible.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorHeading    lipgloss.TerminalColor = ac("161", "168")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorDone       lipgloss.TerminalColor = ac("245", "241")
	colorFlashBg    lipgloss.TerminalColor = ac("196", "160")
	colorFlashFg    lipgloss.TerminalColor = ac("255", "255")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeading() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorHeading).Bold(true)
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func styleDone() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true)
}

func styleFilterSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Underline(true)
}

func styleFlash() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorFlashFg).Background(colorFlashBg).Padding(0, 1)
}

// applyColorProfilePreference only honors NO_COLOR and otherwise follows the
// terminal. termenv.EnvColorProfile would also honor CLICOLOR, which tends to
// switch colors off inside a TUI.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if (strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit")) && profile != termenv.Ascii {
		profile = termenv.TrueColor
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference picks the palette variant:
// 1) TODOS_TUI_THEME=light|dark|auto
// 2) COLORFGBG ("fg;bg"), last segment is the background
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TODOS_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
