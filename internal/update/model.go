package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/taskerhq/taskdash/internal/model"
	"github.com/taskerhq/taskdash/internal/storage"
	"github.com/taskerhq/taskdash/internal/tasksort"
	"github.com/taskerhq/taskdash/internal/workflow"
)

type View string

const (
	ViewBoard  View = "Board"
	ViewDetail View = "Detail"
	ViewForm   View = "Form"
)

type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// TaskCollection is the loading/error/data tri-state for the task
// fetch. DashboardID records which selection the items were loaded for.
type TaskCollection struct {
	Items       []model.Task
	DashboardID string
	Loading     bool
	Err         string
}

type DashboardCollection struct {
	Items   []model.Dashboard
	Loading bool
	Err     string
}

type UserCollection struct {
	Items   []model.User
	Loading bool
	Err     string
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	NewTask string
	Edit    string
	Refresh string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// FormState wraps the workflow form with the TUI focus bookkeeping.
type FormState struct {
	Mode     FormMode
	Data     workflow.Form
	Focus    int
	Choice   int // cursor inside the focused choice field
	ErrText  string
	Saving   bool
}

type Model struct {
	CurrentView       View
	Tasks             TaskCollection
	Dashboards        DashboardCollection
	Users             UserCollection
	ActiveDashboardID string
	ActingUser        model.User
	Sort              tasksort.State
	Cursor            int
	SelectedTaskID    string
	Form              FormState
	Palette           CommandPaletteState
	HelpVisible       bool
	Status            StatusBar
	Keys              GlobalKeyMap
	Quitting          bool
	LastError         error

	repo storage.Repository

	// Bubble components used for rich TUI controls
	taskTable      table.Model
	titleInput     textinput.Model
	deadlineInput  textinput.Model
	descArea       textarea.Model
	commandInput   textinput.Model
	detailViewport viewport.Model
	loadSpinner    spinner.Model
	helpModel      help.Model
	spinnerActive  bool
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// SelectDashboardMsg switches the active dashboard. Re-selecting the
// active "all" aggregate is a deliberate no-op identity-wise but asks
// the store for fresh tasks.
type SelectDashboardMsg struct {
	ID string
}

type ToggleSortMsg struct {
	Field tasksort.Field
}

type DashboardsLoadedMsg struct {
	Dashboards []model.Dashboard
	Err        string
}

type TasksLoadedMsg struct {
	Tasks       []model.Task
	DashboardID string
	Err         string
}

type UsersLoadedMsg struct {
	Users []model.User
	Err   string
}

// SubmitFormMsg asks the open form to validate and save.
type SubmitFormMsg struct{}

type TaskSavedMsg struct {
	Mode FormMode
	Err  string
}

func NewModel(repo storage.Repository, acting model.User) Model {
	m := Model{
		CurrentView: ViewBoard,
		ActingUser:  acting,
		repo:        repo,
		Tasks:       TaskCollection{Loading: true},
		Dashboards:  DashboardCollection{Loading: true},
		Users:       UserCollection{Loading: true},
		Keys: GlobalKeyMap{
			NewTask: "n",
			Edit:    "e",
			Refresh: "r",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.initBubbleComponents()
	return m
}
