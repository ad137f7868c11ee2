// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured.
const DefaultName = "mocha"

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Header and footer bars
	BgSelection string `toml:"bg_selection"` // Selected day
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Days outside the month, hints
	Accent      string `toml:"accent"`       // Title, active view tab
	Event       string `toml:"event"`        // Timed events
	AllDay      string `toml:"all_day"`      // All-day events
	Tentative   string `toml:"tentative"`    // Tentative events
	Today       string `toml:"today"`        // Today marker
	Warning     string `toml:"warning"`      // Errors, cancelled events
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.BgHighlight = coalesce(t.BgHighlight, t.Bg)
	t.BgSelection = coalesce(t.BgSelection, t.BgHighlight)
	t.FgMuted = coalesce(t.FgMuted, t.Fg)
	t.AllDay = coalesce(t.AllDay, t.Event)
	t.Tentative = coalesce(t.Tentative, t.Warning, t.Event)
	t.Today = coalesce(t.Today, t.Accent)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
