package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"actorrank/internal/config"
	"actorrank/internal/eventbus"
	"actorrank/internal/metrics"
	"actorrank/internal/ui/input"
	inputtypes "actorrank/internal/ui/input/types"
	"actorrank/internal/ui/paginator"
	"actorrank/internal/ui/search"
	"actorrank/internal/ui/views"
)

const statusTimeout = 3 * time.Second

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	log    logrus.FieldLogger

	width         int
	height        int
	help          help.Model
	spinner       spinner.Model
	statusMessage string
	inPagerMode   bool // tracks if we're currently in pager mode
	initialQuery  string

	controller   *search.Controller
	paginator    *paginator.Paginator
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRender   *HelpRenderer
	pager        *PagerOps
	cardOpts     views.CardOptions

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. Submitted searches are published on bus
// as SearchRequested events; their outcome must come back as EventMsg.
func NewModel(bus eventbus.EventBus, cfg *config.Config, log logrus.FieldLogger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	keys := inputtypes.DefaultKeyMap()
	hyperlinks := lipgloss.ColorProfile() != termenv.Ascii

	m := &Model{
		bus:          bus,
		config:       cfg,
		log:          log,
		help:         help.New(),
		spinner:      sp,
		paginator:    paginator.New(cfg.UI.PageSize, cfg.UI.ResetPageOnResults),
		renderer:     views.NewRenderer(hyperlinks, cfg.UI.ShowHeadshotURL),
		inputHandler: input.New(keys),
		helpRender:   NewHelpRenderer(),
		pager:        NewPagerOps(),
		cardOpts: views.CardOptions{
			ProfileHost:    cfg.API.ProfileHost,
			PlaceholderURL: cfg.API.PlaceholderURL,
			MaxRoles:       cfg.UI.MaxRoles,
		},
	}
	m.controller = search.NewController(m.requestSearch, log)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// SetInitialQuery makes Init submit query right away
func (m *Model) SetInitialQuery(query string) {
	m.initialQuery = query
}

// requestSearch hands a submitted query to the actor service
func (m *Model) requestSearch(seq uint64, query string, refresh bool) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(eventbus.SearchRequestedEvent{Seq: seq, Query: query, Refresh: refresh})
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.initialQuery != "" {
		m.inputHandler.SetText(m.initialQuery)
		m.controller.OnQueryChange(m.initialQuery)
		return m.submit()
	}
	// start with the cursor in the search box
	return m.inputHandler.ChangeMode(inputtypes.ModeSearch, m.context())
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{Paginator: m.paginator}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.context())

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case EventMsg, spinner.TickMsg, pagerMsg, pauseRenderingMsg, resumeRenderingMsg, clearStatusMsg:
		return m.handleNonKeyboardMsg(msg)

	default:
		// cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.buildViewState())
}

func (m *Model) buildViewState() views.ViewState {
	snapshot := m.controller.Snapshot()
	visible := m.paginator.VisibleSlice()

	ti := m.inputHandler.GetTextInput()
	inputView := ""
	if ti != nil {
		inputView = ti.View()
	}

	return views.ViewState{
		Width:         m.width,
		Height:        m.height,
		InputView:     inputView,
		InputFocused:  m.inputHandler.GetMode() == inputtypes.ModeSearch,
		Query:         snapshot.Query,
		IsLoading:     snapshot.IsLoading,
		SpinnerView:   m.spinner.View(),
		LastError:     snapshot.LastError,
		StatusMessage: m.statusMessage,
		NothingFound:  m.paginator.ShowNothingFound(),
		Cards:         views.BuildCards(visible, m.cardOpts),
		Cursor:        m.paginator.Cursor(),
		PageControl:   m.paginator.ControlView(),
		CurrentPage:   m.paginator.CurrentPage(),
		TotalPages:    m.paginator.TotalPages(),
		ResultCount:   len(m.paginator.Results()),
		HelpModel:     m.help,
		KeyMap:        m.inputHandler.KeyMap(),
	}
}

// submit starts a search for the controller's current query
func (m *Model) submit() tea.Cmd {
	m.statusMessage = ""
	m.controller.OnSearchSubmit()
	return m.spinner.Tick
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		m.controller.OnQueryChange(a.Text)

	case inputtypes.SubmitTextAction:
		m.controller.OnQueryChange(a.Text)
		return m.submit()

	case inputtypes.RefreshAction:
		m.statusMessage = ""
		m.controller.OnRefresh()
		return m.spinner.Tick

	case inputtypes.CancelTextAction, inputtypes.ChangeModeAction:
		// the input handler already switched modes

	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.OpenActorAction:
		actor, ok := m.paginator.Selected()
		if !ok {
			return nil
		}
		return m.showInPager(actor.Name, views.RenderActorDetail(actor, m.cardOpts))

	case inputtypes.ToggleHelpAction:
		return m.showInPager("help", m.helpRender.RenderHelpContent(m.inputHandler.KeyMap()))

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

func (m *Model) navigate(direction string) {
	var moved bool
	switch direction {
	case "up":
		m.paginator.MoveCursor(-1)
	case "down":
		m.paginator.MoveCursor(1)
	case "left", "pageup":
		moved = m.paginator.PrevPage()
	case "right", "pagedown":
		moved = m.paginator.NextPage()
	case "home":
		moved = m.paginator.FirstPage()
	case "end":
		moved = m.paginator.LastPage()
	}
	if moved {
		metrics.PageChanges.Inc()
		m.log.WithField("page", m.paginator.CurrentPage()).Debug("page changed")
	}
}

// showInPager returns a command that shows content using the ov pager
func (m *Model) showInPager(title, content string) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return pagerMsg{title: title, err: errNoProgram} }
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{title: title, err: err}
	}
}

// handleEvent routes bus events to the controller and the paginator
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SearchCompletedEvent:
		if m.controller.OnSearchResult(e.Seq, e.Results) == search.OutcomeStale {
			metrics.SearchRequests.WithLabelValues("stale").Inc()
			return nil
		}
		m.paginator.OnSearchCompleted(m.controller.Results())
		m.log.WithFields(logrus.Fields{"seq": e.Seq, "query": e.Query, "count": len(e.Results)}).Info("search completed")
		return nil

	case eventbus.SearchFailedEvent:
		if m.controller.OnSearchError(e.Seq, e.Err) == search.OutcomeStale {
			metrics.SearchRequests.WithLabelValues("stale").Inc()
		}
		return nil

	case eventbus.ErrorEvent:
		m.statusMessage = e.Message
		if e.Err != nil {
			m.log.WithError(e.Err).Warn(e.Message)
			m.statusMessage = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return clearStatusAfter(statusTimeout)

	case eventbus.ConfigLoadedEvent:
		m.log.WithField("path", e.Path).Debug("config loaded")
	}
	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case spinner.TickMsg:
		// the spinner stops ticking once nothing is loading
		if !m.controller.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).WithField("pager", msg.title).Warn("pager failed")
			m.statusMessage = fmt.Sprintf("Could not open %s: %v", msg.title, msg.err)
			return m, clearStatusAfter(statusTimeout)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil
	}
	return m, nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}
