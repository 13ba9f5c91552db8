package views

import (
	"fmt"
	"strings"
)

type DashboardTabData struct {
	Name   string
	Active bool
}

type BoardPanelData struct {
	Tabs       []DashboardTabData
	TableView  string
	TaskCount  int
	Loading    bool
	ErrText    string
	Directory  string
	SortActive bool
}

type DetailPanelData struct {
	Empty        bool
	Title        string
	Status       string
	Dashboard    string
	Reporter     string
	Deadline     string
	ViewportView string
}

// FormPanelData carries the create/edit surface. FocusSlot indexes the
// field order: title, description, deadline, dashboard, approval
// toggle, approver, blockers toggle, blockers, status, assignee.
type FormPanelData struct {
	Mode            string
	TitleView       string
	DescriptionView string
	DeadlineView    string
	Dashboard       string
	Reporter        string
	RequireApproval bool
	Approver        string
	HasBlockers     bool
	Blockers        []string
	Status          string
	Assignee        string
	FocusSlot       int
	Candidate       string
	ErrText         string
	Saving          bool
	EditMode        bool
}

type PalettePanelData struct {
	InputView string
	Hint      string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderBoardPanel(data BoardPanelData) string {
	var b strings.Builder
	tabs := make([]string, 0, len(data.Tabs))
	for _, tab := range data.Tabs {
		if tab.Active {
			tabs = append(tabs, fmt.Sprintf("[%s]", tab.Name))
		} else {
			tabs = append(tabs, fmt.Sprintf(" %s ", tab.Name))
		}
	}
	b.WriteString("boards: " + strings.Join(tabs, " | ") + "\n")
	if data.Loading {
		b.WriteString("loading tasks...\n")
	}
	if data.ErrText != "" {
		b.WriteString("error: " + data.ErrText + "\n")
	}
	b.WriteString(data.TableView + "\n")
	summary := fmt.Sprintf("%d task(s) on %s", data.TaskCount, data.Directory)
	if data.SortActive {
		summary += " | sorted"
	}
	b.WriteString(summary)
	return strings.TrimSpace(b.String())
}

func RenderDetailPanel(data DetailPanelData) string {
	if data.Empty {
		return "detail:\nno task selected"
	}
	var b strings.Builder
	b.WriteString("detail:\n")
	fmt.Fprintf(&b, "%s | %s\n", data.Title, data.Status)
	fmt.Fprintf(&b, "board: %s | reporter: %s | due: %s\n", data.Dashboard, data.Reporter, data.Deadline)
	b.WriteString(data.ViewportView)
	return strings.TrimSpace(b.String())
}

var formSlotLabels = []string{
	"title", "description", "deadline", "dashboard",
	"approval", "approver", "blockers?", "blocked by",
	"status", "assignee",
}

func RenderFormPanel(data FormPanelData) string {
	marker := func(slot int) string {
		if slot == data.FocusSlot {
			return "> "
		}
		return "  "
	}

	onOff := func(v bool) string {
		if v {
			return "[x]"
		}
		return "[ ]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "task form (%s):\n", data.Mode)
	b.WriteString(marker(0) + data.TitleView + "\n")
	b.WriteString(marker(1) + "description:\n" + data.DescriptionView + "\n")
	b.WriteString(marker(2) + data.DeadlineView + "\n")
	fmt.Fprintf(&b, "%sdashboard: %s\n", marker(3), data.Dashboard)
	fmt.Fprintf(&b, "  reporter: %s\n", data.Reporter)
	fmt.Fprintf(&b, "%s%s require approval\n", marker(4), onOff(data.RequireApproval))
	if data.RequireApproval {
		fmt.Fprintf(&b, "%sapprover: %s\n", marker(5), data.Approver)
	}
	fmt.Fprintf(&b, "%s%s has blockers\n", marker(6), onOff(data.HasBlockers))
	if data.HasBlockers {
		fmt.Fprintf(&b, "%sblocked by: %s\n", marker(7), strings.Join(data.Blockers, ", "))
	}
	if data.EditMode {
		fmt.Fprintf(&b, "%sstatus: %s\n", marker(8), data.Status)
		fmt.Fprintf(&b, "%sassignee: %s\n", marker(9), data.Assignee)
	}
	if data.Candidate != "" && data.FocusSlot < len(formSlotLabels) {
		fmt.Fprintf(&b, "pick %s: %s (h/l to cycle)\n", formSlotLabels[data.FocusSlot], data.Candidate)
	}
	if data.ErrText != "" {
		b.WriteString("error: " + data.ErrText + "\n")
	}
	if data.Saving {
		b.WriteString("saving...\n")
	}
	b.WriteString("actions: [tab]next field [ctrl+s]save [esc]discard")
	return strings.TrimSpace(b.String())
}

func RenderPalettePanel(data PalettePanelData) string {
	var b strings.Builder
	b.WriteString("command palette:\n")
	b.WriteString(data.InputView + "\n")
	b.WriteString(data.Hint)
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "help (%s view):\n", data.CurrentView)
	for _, binding := range data.Bindings {
		b.WriteString(binding + "\n")
	}
	b.WriteString(data.HelpView)
	return strings.TrimSpace(b.String())
}
