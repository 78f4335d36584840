// Package theme provides the color themes of the history view.
package theme

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Default is used when no theme, or an unknown one, is configured.
const Default = "mocha"

// ErrBadColor is returned when a theme color is missing or not #rrggbb.
var ErrBadColor = errors.New("theme color must be #rrggbb")

//go:embed embedded/*.toml
var embeddedThemes embed.FS

var names = []string{"mocha", "latte", "light"}

// Theme holds the colors of one theme. The modal colors are optional in
// the file and fall back to the base colors on load.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"` // filter panel, zebra rows, cards
	BgSelection string `toml:"bg_selection"` // row under the cursor
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // labels, product codes, hints
	Accent      string `toml:"accent"`   // title, borders, focused input
	Success     string `toml:"success"`  // totals, export confirmations
	Error       string `toml:"error"`    // load error banner
	Warning     string `toml:"warning"`  // loading and applying labels

	BaseBg      string `toml:"base_bg"`      // detail modal background
	ModalBorder string `toml:"modal_border"` // detail modal frame
	TextPrimary string `toml:"text_primary"` // detail values
	TextMuted   string `toml:"text_muted"`   // detail labels
	Highlight   string `toml:"highlight"`    // detail section titles
}

// Load returns the named theme. Names are case insensitive; an empty or
// unknown name loads Default.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsAvailable(name) {
		name = Default
	}

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("theme %q: %w", name, err)
	}
	t.fillModal()

	return &t, nil
}

func (t *Theme) validate() error {
	for field, value := range map[string]string{
		"bg":      t.Bg,
		"fg":      t.Fg,
		"accent":  t.Accent,
		"success": t.Success,
		"error":   t.Error,
		"warning": t.Warning,
	} {
		if !isHex(value) {
			return fmt.Errorf("%s = %q: %w", field, value, ErrBadColor)
		}
	}
	return nil
}

// fillModal derives the modal colors the theme file leaves unset.
func (t *Theme) fillModal() {
	t.BaseBg = coalesce(t.BaseBg, t.BgHighlight, t.Bg)
	t.ModalBorder = coalesce(t.ModalBorder, t.Accent)
	t.TextPrimary = coalesce(t.TextPrimary, t.Fg)
	t.TextMuted = coalesce(t.TextMuted, t.FgMuted, t.Fg)
	t.Highlight = coalesce(t.Highlight, t.BgSelection, t.Accent)
}

func isHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the names of the embedded themes.
func Available() []string {
	return slices.Clone(names)
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(names, strings.ToLower(name))
}
