package theme

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "mocha", want: "mocha"},
		{in: "Latte", want: "latte"},
		{in: "frappe", want: "frappe"},
		{in: "", want: DefaultName},
		{in: "solarized", want: DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			th, err := Load(tt.in)
			if err != nil {
				t.Fatalf("Load(%q) failed: %v", tt.in, err)
			}
			if th.Name != tt.want {
				t.Errorf("Load(%q).Name = %q, want %q", tt.in, th.Name, tt.want)
			}
		})
	}
}

// Every embedded theme must define every role the calendar paints.
func TestEmbeddedThemesComplete(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) failed: %v", name, err)
			}
			roles := map[string]string{
				"bg": th.Bg, "bg_highlight": th.BgHighlight, "bg_selection": th.BgSelection,
				"fg": th.Fg, "fg_muted": th.FgMuted, "accent": th.Accent,
				"event": th.Event, "all_day": th.AllDay, "tentative": th.Tentative,
				"today": th.Today, "warning": th.Warning,
			}
			for role, hex := range roles {
				if len(hex) != 7 || !strings.HasPrefix(hex, "#") {
					t.Errorf("%s = %q, want #rrggbb", role, hex)
				}
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	th := Theme{Bg: "#000000", Fg: "#ffffff", Accent: "#ff00ff", Event: "#0000ff", Warning: "#ff0000"}
	th.applyDefaults()

	checks := []struct{ role, got, want string }{
		{"bg_highlight", th.BgHighlight, th.Bg},
		{"bg_selection", th.BgSelection, th.Bg},
		{"fg_muted", th.FgMuted, th.Fg},
		{"all_day", th.AllDay, th.Event},
		{"tentative", th.Tentative, th.Warning},
		{"today", th.Today, th.Accent},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.role, c.got, c.want)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	for name, want := range map[string]bool{
		"mocha":     true,
		"MACCHIATO": true,
		"light":     false,
		"":          false,
	} {
		if got := IsAvailable(name); got != want {
			t.Errorf("IsAvailable(%q) = %t, want %t", name, got, want)
		}
	}
}
