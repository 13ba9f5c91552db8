package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/taskerhq/taskdash/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.NewTask, Action: "new task"},
		{Key: m.Keys.Edit, Action: "edit selected task"},
		{Key: m.Keys.Refresh, Action: "refresh tasks"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewBoard:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "h/l", Action: "previous/next dashboard"},
			{Key: "s/d/c", Action: "toggle sort: status/deadline/created"},
			{Key: "enter", Action: "open task detail"},
		}
	case ViewDetail:
		return []KeyBinding{
			{Key: "j/k", Action: "scroll detail"},
			{Key: "esc", Action: "back to board"},
		}
	case ViewForm:
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next/previous field"},
			{Key: "h/l", Action: "cycle choice field"},
			{Key: "space", Action: "toggle approval/blockers"},
			{Key: "ctrl+s", Action: "save task"},
			{Key: "esc", Action: "discard form"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
