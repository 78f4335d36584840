package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/abastecimentos/internal/tui/view"
)

// Rect is a screen region in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell at (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Modal renders content centered over a full-screen backdrop. A closed
// modal renders nothing and leaves the base untouched.
type Modal struct {
	open     bool
	bgColor  lipgloss.Color
	backdrop lipgloss.Style
}

// NewModal initializes a closed modal.
func NewModal() Modal {
	return Modal{bgColor: lipgloss.Color("")}
}

// Open shows the modal.
func (o *Modal) Open() {
	o.open = true
}

// Close hides the modal.
func (o *Modal) Close() {
	o.open = false
}

// IsOpen reports whether the modal is visible.
func (o Modal) IsOpen() bool {
	return o.open
}

// SetBackground updates the color used behind the content box.
func (o *Modal) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// SetBackdrop updates the style applied to the dimmed base content.
func (o *Modal) SetBackdrop(style lipgloss.Style) {
	o.backdrop = style
}

// Bounds returns where content is placed on a width x height screen.
// Clicks outside of it land on the backdrop.
func (o Modal) Bounds(width, height int, content string) Rect {
	if width <= 0 || height <= 0 {
		return Rect{}
	}

	boxW, boxH := o.contentSize(o.contentLines(content))
	if boxW > width {
		boxW = width
	}
	if boxH > height {
		boxH = height
	}

	top := (height - boxH) / 2
	left := (width - boxW) / 2
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	return Rect{X: left, Y: top, W: boxW, H: boxH}
}

// Render draws the backdrop and the centered content on top of base.
func (o Modal) Render(base string, width, height int, content string) string {
	if !o.open {
		return base
	}
	if width <= 0 || height <= 0 {
		return base
	}

	box := o.Bounds(width, height, content)
	if box.W <= 0 || box.H <= 0 {
		return base
	}

	baseLines := o.backdropLines(base, width, height)
	contentLines := o.boxLines(o.contentLines(content), box.W, box.H)

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < box.Y || row >= box.Y+box.H {
			lines = append(lines, baseLines[row])
			continue
		}

		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, box.X)
		rightSlice := ansi.Cut(baseLine, box.X+box.W, width)
		lines = append(lines, leftSlice+contentLines[row-box.Y]+rightSlice)
	}

	return strings.Join(lines, "\n")
}

// boxLines pads or cuts content lines to exactly width x height.
func (o Modal) boxLines(content []string, width, height int) []string {
	bgSeq := view.ModalBackgroundSeq(o.bgColor)

	lines := make([]string, height)
	for i := 0; i < height; i++ {
		line := ""
		if i < len(content) {
			line = content[i]
		}
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			line = ansi.Cut(line, 0, width)
			lineWidth = width
		}
		if lineWidth < width {
			line += strings.Repeat(" ", width-lineWidth)
		}
		lines[i] = o.applyBackgroundResets(line, bgSeq) + ansi.ResetStyle
	}
	return lines
}

func (o Modal) contentLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (o Modal) contentSize(lines []string) (int, int) {
	if len(lines) == 0 {
		return 0, 0
	}
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth, len(lines)
}

func (o Modal) applyBackgroundResets(line, bgSeq string) string {
	if bgSeq == "" || line == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return bgSeq + line
}

// backdropLines strips the styling of base and repaints it dimmed, filling
// the whole screen.
func (o Modal) backdropLines(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	for i, line := range lines {
		plain := ansi.Strip(line)
		lineWidth := lipgloss.Width(plain)
		if lineWidth > width {
			plain = ansi.Cut(plain, 0, width)
		} else if lineWidth < width {
			plain += strings.Repeat(" ", width-lineWidth)
		}
		lines[i] = o.backdrop.Render(plain)
	}

	return lines
}
