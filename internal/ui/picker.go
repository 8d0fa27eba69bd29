package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerItem is one selectable entry: a campaign (name + purpose) or a
// wallet (name + address).
type PickerItem struct {
	Label    string // primary text
	SubLabel string // dimmed secondary text
	Value    string // returned on selection; campaign id or wallet name
}

// pickerModel drives the Bubble Tea list used when a command needs a
// campaign or wallet and none was named on the command line.
type pickerModel struct {
	title     string
	items     []PickerItem
	row       int
	selected  *PickerItem
	cancelled bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "q", "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < len(m.items)-1 {
			m.row++
		}
	case "g":
		m.row = 0
	case "G":
		m.row = len(m.items) - 1
	case "enter", " ":
		if len(m.items) > 0 {
			item := m.items[m.row]
			m.selected = &item
			return m, tea.Quit
		}
	default:
		// Digits jump straight to a row; campaign ids are list indexes.
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			if n := int(s[0] - '0'); n < len(m.items) {
				m.row = n
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.cancelled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(StyleTitle.Render("  "+m.title) + "\n\n")

	for i, item := range m.items {
		marker := "    "
		if i == m.row {
			marker = "  ▸ "
		}

		line := marker + StyleValue.Render(item.Label)
		if item.SubLabel != "" {
			line += "  " + StyleMeta.Render(item.SubLabel)
		}

		if i == m.row {
			line = StyleSelected.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(StyleMeta.Render("  ↑↓/jk move · 0-9 jump · Enter select · q cancel") + "\n")
	return sb.String()
}

// PickItem shows the picker and returns the chosen item's Value, or ("",
// nil) when the user cancels.
func PickItem(title string, items []PickerItem) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("nothing to pick from")
	}

	final, err := tea.NewProgram(pickerModel{title: title, items: items}, tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}

	fm := final.(pickerModel)
	if fm.cancelled || fm.selected == nil {
		return "", nil
	}
	return fm.selected.Value, nil
}
