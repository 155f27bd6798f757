package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskboard/internal/commands"
	"github.com/sandeepkv93/taskboard/internal/dateutil"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/validator"
)

type Screen string

const (
	ScreenHome       Screen = "Home"
	ScreenDetail     Screen = "Detail"
	ScreenStatistics Screen = "Statistics"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Home       string
	Statistics string
	Help       string
	Quit       string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Form field order on the detail screen.
const (
	fieldTitle = iota
	fieldDeadline
	fieldPriority
	fieldStatus
	fieldCategory
	fieldDescription
	fieldCount
)

// FormState backs the detail screen. TaskID is empty for a new task.
type FormState struct {
	TaskID     string
	CreateTime string
	Focus      int
	Priority   model.Priority
	Status     model.Status
	Errors     map[string]string
}

type Model struct {
	Screen         Screen
	Tasks          []model.Task
	Categories     []model.Category
	Filter         string
	Cursor         int
	SelectedTaskID string
	Form           FormState
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	store     Store
	clock     dateutil.Clock
	validator *validator.Validator
	logger    *log.Logger
	theme     string
	newID     func() string

	taskList      list.Model
	statsTable    table.Model
	commandInput  textinput.Model
	titleInput    textinput.Model
	deadlineInput textinput.Model
	categoryInput textinput.Model
	descArea      textarea.Model
	preview       viewport.Model
	helpModel     help.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchScreenMsg struct {
	Screen Screen
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ReloadMsg asks the model to re-read tasks and categories from the store.
type ReloadMsg struct{}

func NewModel(opts Options) Model {
	opts = opts.withDefaults()
	m := Model{
		Screen: ScreenHome,
		Filter: commands.ShowAll,
		Keys: GlobalKeyMap{
			Home:       "1",
			Statistics: "2",
			Help:       "?",
			Quit:       "q",
		},
		store:     opts.Store,
		clock:     opts.Clock,
		validator: validator.New(opts.Clock),
		logger:    opts.Logger,
		theme:     opts.Theme,
		newID:     opts.NewID,
	}
	m.initBubbleComponents()
	m.reload()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 16)
	m.taskList.Title = "任务列表"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)
	m.taskList.SetShowStatusBar(false)

	cols := []table.Column{
		{Title: "指标", Width: 24},
		{Title: "数量", Width: 10},
	}
	m.statsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(16))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "任务名称"
	m.titleInput.CharLimit = 0
	m.titleInput.Width = 48

	m.deadlineInput = textinput.New()
	m.deadlineInput.Placeholder = dateutil.DateLayout
	m.deadlineInput.CharLimit = 10
	m.deadlineInput.Width = 12

	m.categoryInput = textinput.New()
	m.categoryInput.Placeholder = "分类"
	m.categoryInput.CharLimit = 64
	m.categoryInput.Width = 32

	m.descArea = textarea.New()
	m.descArea.SetWidth(54)
	m.descArea.SetHeight(6)
	m.descArea.ShowLineNumbers = false
	m.descArea.Placeholder = "任务描述 (markdown)"
	m.descArea.CharLimit = 0

	m.preview = viewport.New(54, 12)
	m.helpModel = help.New()
}
