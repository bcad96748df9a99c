package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/kinelab/internal/config"
)

type field struct {
	key   string
	label string
	input textinput.Model
}

// form is a column of numeric inputs with one focused field.
type form struct {
	fields []field
	focus  int
}

func newField(key, label, placeholder, value string) field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 12
	ti.Width = 12
	ti.SetValue(value)
	return field{key: key, label: label, input: ti}
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newFreeFallForm(cfg *config.Config) form {
	f := form{fields: []field{
		newField("height", "Height (m)", "50", number(cfg.FreeFall.Height)),
		newField("velocity", "Velocity (m/s)", "0 = at rest", number(cfg.FreeFall.Velocity)),
	}}
	f.setFocus(0)
	return f
}

func newUniformForm(cfg *config.Config) form {
	target := ""
	if cfg.Uniform.Target != nil {
		target = number(*cfg.Uniform.Target)
	}
	f := form{fields: []field{
		newField("start", "Start x₀ (m)", "0", number(cfg.Uniform.Start)),
		newField("velocity", "Velocity (m/s)", "from target", number(cfg.Uniform.Velocity)),
		newField("target", "Target xf (m)", "optional", target),
		newField("duration", "Duration (s)", "5", number(cfg.Uniform.Duration)),
	}}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	n := len(f.fields)
	if n == 0 {
		return
	}
	f.focus = ((i % n) + n) % n
	for j := range f.fields {
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

func (f form) value(key string) string {
	for _, fl := range f.fields {
		if fl.key == key {
			return strings.TrimSpace(fl.input.Value())
		}
	}
	return ""
}

func (f *form) set(key, value string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(value)
		}
	}
}

// update forwards msg to the focused input only.
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd
}

func (f form) view(st styles) string {
	var b strings.Builder
	for i, fl := range f.fields {
		marker := "  "
		label := st.label.Render(fl.label)
		if i == f.focus {
			marker = st.cursor.Render("▸ ")
			label = st.focused.Width(16).Render(fl.label)
		}
		b.WriteString(marker + label + fl.input.View() + "\n")
	}
	return b.String()
}
