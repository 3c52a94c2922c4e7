package tui

import (
	"fmt"
	"math"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/dream"
)

// action is an edit applied to the focused row during a layout pass.
type action int

const (
	actionNone action = iota
	actionIncrease
	actionDecrease
	actionActivate
)

type rowKind int

const (
	rowHeading rowKind = iota
	rowLabel
	rowInput
)

type formRow struct {
	kind    rowKind
	label   string
	value   string
	swatch  string // hex color shown beside the value
	focused bool
}

// form implements dream.Controls as an immediate-mode list of rows. Every
// layout pass rebuilds the rows; a pending action is applied to the input
// row whose position matches focus.
type form struct {
	rows   []formRow
	focus  int
	action action
	inputs int
}

var _ dream.Controls = (*form)(nil)

func newForm(focus int, act action) *form {
	return &form{focus: focus, action: act}
}

// next registers an input row and returns the action aimed at it.
func (f *form) next() (bool, action) {
	idx := f.inputs
	f.inputs++
	if idx != f.focus {
		return false, actionNone
	}
	act := f.action
	f.action = actionNone
	return true, act
}

func (f *form) add(focused bool, label, value string) {
	f.rows = append(f.rows, formRow{kind: rowInput, label: label, value: value, focused: focused})
}

func (f *form) Heading(text string) {
	f.rows = append(f.rows, formRow{kind: rowHeading, label: text})
}

func (f *form) Label(text string) {
	f.rows = append(f.rows, formRow{kind: rowLabel, label: text})
}

func (f *form) Float(label string, v *float64, lo, hi, step float64) bool {
	focused, act := f.next()
	old := *v
	switch act {
	case actionIncrease:
		*v = math.Min(hi, snap(*v+step, step))
	case actionDecrease:
		*v = math.Max(lo, snap(*v-step, step))
	}
	f.add(focused, label, humanize.FtoaWithDigits(*v, 3))
	return *v != old
}

// snap rounds v to the precision of step to keep repeated stepping clean.
func snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

func (f *form) Int(label string, v *int, lo, hi int) bool {
	focused, act := f.next()
	old := *v
	switch act {
	case actionIncrease:
		*v = min(hi, *v+1)
	case actionDecrease:
		*v = max(lo, *v-1)
	}
	f.add(focused, label, humanize.Comma(int64(*v)))
	return *v != old
}

// Color steps the hue with increase and decrease, and cycles through the
// active palette presets on activate.
func (f *form) Color(label string, c *colorscheme.Color) bool {
	focused, act := f.next()
	old := *c
	switch act {
	case actionIncrease:
		*c = c.RotateHue(15)
	case actionDecrease:
		*c = c.RotateHue(-15)
	case actionActivate:
		*c = nextPreset(*c)
	}
	f.rows = append(f.rows, formRow{
		kind:    rowInput,
		label:   label,
		value:   c.Hex(),
		swatch:  fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		focused: focused,
	})
	return *c != old
}

func (f *form) Toggle(label string, v *bool) bool {
	focused, act := f.next()
	if act != actionNone {
		*v = !*v
	}
	value := "[ ]"
	if *v {
		value = "[x]"
	}
	f.add(focused, label, value)
	return act != actionNone
}

func (f *form) Choice(label string, selected *int, options []string) bool {
	focused, act := f.next()
	old := *selected
	if len(options) > 0 {
		switch act {
		case actionIncrease, actionActivate:
			*selected = (*selected + 1) % len(options)
		case actionDecrease:
			*selected = (*selected - 1 + len(options)) % len(options)
		}
	}
	value := ""
	if *selected >= 0 && *selected < len(options) {
		value = "‹ " + options[*selected] + " ›"
	}
	f.add(focused, label, value)
	return *selected != old
}

func (f *form) Button(label string) bool {
	focused, act := f.next()
	f.add(focused, "", "[ "+label+" ]")
	return act == actionActivate
}

// presets are the colors cycled through by activating a color row.
var presets = func() []colorscheme.Color {
	var out []colorscheme.Color
	for _, name := range colorscheme.Names() {
		s, _ := colorscheme.Lookup(name)
		for _, c := range s.Colors {
			if !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}()

func nextPreset(c colorscheme.Color) colorscheme.Color {
	if len(presets) == 0 {
		return c
	}
	i := slices.Index(presets, c)
	return presets[(i+1)%len(presets)]
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// render draws the rows, one per line.
func (f *form) render(width int) string {
	labelWidth := 0
	for _, r := range f.rows {
		if r.kind == rowInput {
			labelWidth = max(labelWidth, lipgloss.Width(r.label))
		}
	}

	var s string
	for i, r := range f.rows {
		if i > 0 {
			s += "\n"
		}
		switch r.kind {
		case rowHeading:
			s += headingStyle.Render(r.label)
		case rowLabel:
			s += labelStyle.Width(max(width, 0)).Render(r.label)
		case rowInput:
			cursor := "  "
			line := lipgloss.NewStyle().Width(labelWidth).Render(r.label) + "  " + r.value
			if r.swatch != "" {
				line += " " + lipgloss.NewStyle().Background(lipgloss.Color(r.swatch)).Render("    ")
			}
			if r.focused {
				cursor = "> "
				line = focusStyle.Render(line)
			}
			s += cursor + line
		}
	}
	return s
}
