package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Event       lipgloss.Color
	AllDay      lipgloss.Color
	Tentative   lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	// Block backgrounds for event chips.
	EventBg     lipgloss.Color
	AllDayBg    lipgloss.Color
	TentativeBg lipgloss.Color

	TextOnAccent lipgloss.Color
	TextOnEvent  lipgloss.Color
	TextOnAllDay lipgloss.Color
	TextOnToday  lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	isLight := isLightTheme(t.Bg)
	eventBg := blockBg(t.Event, t.Bg, isLight)
	allDayBg := blockBg(t.AllDay, t.Bg, isLight)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Event:       lipgloss.Color(t.Event),
		AllDay:      lipgloss.Color(t.AllDay),
		Tentative:   lipgloss.Color(t.Tentative),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		EventBg:     lipgloss.Color(eventBg),
		AllDayBg:    lipgloss.Color(allDayBg),
		TentativeBg: lipgloss.Color(blockBg(t.Tentative, t.Bg, isLight)),

		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnEvent:  lipgloss.Color(chooseTextColor(eventBg, t.Bg, t.Fg)),
		TextOnAllDay: lipgloss.Color(chooseTextColor(allDayBg, t.Bg, t.Fg)),
		TextOnToday:  lipgloss.Color(chooseTextColor(t.Today, t.Bg, t.Fg)),
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func blockBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

// minChannel keeps darkened blocks visible on dark backgrounds.
const minChannel = 40.0 / 255.0

// darkenColor halves the brightness of a hex color, flooring each channel.
func darkenColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	d := c.BlendRgb(colorful.Color{}, 0.5)
	d.R = max(d.R, minChannel)
	d.G = max(d.G, minChannel)
	d.B = max(d.B, minChannel)
	return d.Clamped().Hex()
}

// blendColors mixes a towards b; ratio 0 is a, 1 is b.
func blendColors(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	ratio = min(max(ratio, 0), 1)
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
