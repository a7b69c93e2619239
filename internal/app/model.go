// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/prismlabs/prism-tui/internal/analytics"
	"github.com/prismlabs/prism-tui/internal/api"
	"github.com/prismlabs/prism-tui/internal/services"
	"github.com/prismlabs/prism-tui/internal/session"
	"github.com/prismlabs/prism-tui/internal/ui/login"
	"github.com/prismlabs/prism-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabDashboard is the ID for the dashboard tab.
	TabDashboard TabID = iota
	// TabKeys is the ID for the proxy keys tab.
	TabKeys
	// TabRequests is the ID for the request log tab.
	TabRequests
	// TabAccount is the ID for the account tab.
	TabAccount
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabKeys:
		return "Keys"
	case TabRequests:
		return "Requests"
	case TabAccount:
		return "Account"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Escape  key.Binding
	Delete  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "keys")),
		Tab3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "requests")),
		Tab4:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "account")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.NextTab, k.PrevTab},
		{k.Up, k.Down, k.Enter},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Tab bar styles
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Help    lipgloss.Style
	Toast   lipgloss.Style

	// Common styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#8B5CF6"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Help = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)

	return s
}

// notificationSweepInterval is how often expired toasts are pruned.
const notificationSweepInterval = 2 * time.Second

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	// Shared state
	state    *State
	services *services.Manager
	keymap   KeyMap
	styles   Styles

	// Login screen shown while the session is anonymous.
	login login.Model

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool

	refreshInterval time.Duration

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager, refreshInterval time.Duration) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Model{
		activeTab:       TabDashboard,
		tabNames:        []string{"Dashboard", "Keys", "Requests", "Account"},
		tabs:            make([]Tab, 4),
		state:           NewState(),
		services:        mgr,
		keymap:          DefaultKeyMap(),
		styles:          DefaultStyles(),
		login:           login.New(),
		spinner:         s,
		refreshInterval: refreshInterval,
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetServices returns the service manager.
func (m *Model) GetServices() *services.Manager {
	return m.services
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Resolving session...")

	cmds := []tea.Cmd{
		m.spinner.Tick,
		tickCmd(notificationSweepInterval),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
		cmds = append(cmds, bootstrapCmd(m.services))
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg, tea.KeyMsg, spinner.TickMsg:
		if cmd := m.handleTeaMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if m.showingLogin() {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// showingLogin reports whether the login screen currently owns the view.
func (m *Model) showingLogin() bool {
	return m.state.GetSession().Status == session.StatusAnonymous
}

func (m *Model) handleTeaMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}
	return nil
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		cmds = append(cmds, m.handleTick())
	case RefreshTickMsg:
		cmds = append(cmds, m.handleRefreshTick()...)
	case SubscriptionEventMsg:
		cmds = append(cmds, m.handleSubscriptionEvent(msg)...)
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEventMsg(msg)...)
	case SessionResolvedMsg:
		cmds = append(cmds, m.handleSessionResolved(msg)...)
	case login.SubmitMsg:
		cmds = append(cmds, m.handleLoginSubmit(msg)...)
	case LoginResultMsg:
		cmds = append(cmds, m.handleLoginResult(msg)...)
	case LogoutMsg:
		if m.services != nil {
			m.services.Logout()
		}
	case PeriodChangedMsg:
		cmds = append(cmds, m.handlePeriodChanged(msg)...)
	case DashboardLoadedMsg:
		cmds = append(cmds, m.handleDashboardLoaded(msg)...)
	case KeysLoadedMsg:
		cmds = append(cmds, m.handleKeysLoaded(msg)...)
	case CreateKeyMsg:
		cmds = append(cmds, createKeyCmd(m.services, msg.ProviderAPIKey, msg.Label))
	case KeyCreatedMsg:
		cmds = append(cmds, m.handleKeyCreated(msg)...)
	case DeleteKeyMsg:
		cmds = append(cmds, deleteKeyCmd(m.services, msg.ID))
	case KeyDeletedMsg:
		cmds = append(cmds, m.handleKeyDeleted(msg)...)
	case RequestPageMsg:
		m.state.SetLoading("requests", true)
		cmds = append(cmds, loadRequestsCmd(m.services, msg.Page))
	case RequestsLoadedMsg:
		cmds = append(cmds, m.handleRequestsLoaded(msg)...)
	case AddNotificationMsg:
		cmds = append(cmds, m.handleAddNotification(msg)...)
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case StartLoadingMsg:
		m.state.SetLoading(msg.Resource, true)
	case StopLoadingMsg:
		m.state.SetLoading(msg.Resource, false)
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(msg.Error.Error()))
	case RefreshMsg:
		cmds = append(cmds, m.handleRefresh(msg)...)
	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.updateTabSizes()
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.login.SetSize(msg.Width, msg.Height)
	m.updateTabSizes()
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleTick() tea.Cmd {
	m.state.ClearExpiredNotifications()
	return tickCmd(notificationSweepInterval)
}

func (m *Model) handleRefreshTick() []tea.Cmd {
	cmds := []tea.Cmd{refreshTickCmd(m.refreshInterval)}
	if m.state.IsAuthenticated() {
		cmds = append(cmds, fetchDashboardCmd(m.services, m.state.RequestedPeriod()))
	}
	return cmds
}

func (m *Model) handleSubscriptionEvent(msg SubscriptionEventMsg) []tea.Cmd {
	m.eventChannel = msg.Channel
	return []tea.Cmd{waitForServiceEventCmd(m.eventChannel)}
}

func (m *Model) handleServiceEventMsg(msg ServiceEventMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.handleServiceEvent(msg.Event); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.eventChannel != nil {
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	}
	return cmds
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.SessionChangedEvent:
		wasAuthenticated := m.state.IsAuthenticated()
		m.state.SetSession(e.Session)

		if e.Session.Status == session.StatusAuthenticated && !wasAuthenticated {
			return tea.Batch(m.loadAuthenticatedData()...)
		}
		if e.Session.Status == session.StatusAnonymous && wasAuthenticated {
			m.login.Reset()
			return notifyInfoCmd("Session ended")
		}

	case services.BudgetAlertEvent:
		return func() tea.Msg {
			return AddNotificationMsg{
				Type:     NotificationWarning,
				Message:  fmt.Sprintf("Spend at %.0f%% of budget", e.Percent),
				Duration: LongNotificationDuration,
			}
		}

	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}

func (m *Model) handleSessionResolved(msg SessionResolvedMsg) []tea.Cmd {
	m.state.SetLoading("initial", false)
	m.state.ClearLoadingNotification()

	var cmds []tea.Cmd
	cmds = append(cmds, refreshTickCmd(m.refreshInterval))
	if msg.Error != nil && !errors.Is(msg.Error, api.ErrUnauthorized) {
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Session check failed: %v", msg.Error)))
	}
	return cmds
}

func (m *Model) handleLoginSubmit(msg login.SubmitMsg) []tea.Cmd {
	m.login.SetBusy(true)
	return []tea.Cmd{loginCmd(m.services, LoginSubmitMsg{
		Email:            msg.Email,
		Password:         msg.Password,
		OrganizationName: msg.OrganizationName,
		Signup:           msg.Signup,
	})}
}

func (m *Model) handleLoginResult(msg LoginResultMsg) []tea.Cmd {
	m.login.SetBusy(false)
	if msg.Error != nil {
		m.login.SetError(msg.Error)
		return nil
	}

	m.login.Reset()
	if msg.Signup {
		return []tea.Cmd{notifySuccessCmd("Organization created")}
	}
	return []tea.Cmd{notifySuccessCmd("Signed in")}
}

// loadAuthenticatedData kicks off the fetches that need a valid session.
func (m *Model) loadAuthenticatedData() []tea.Cmd {
	m.state.SetLoading("dashboard", true)
	m.state.SetLoading("keys", true)
	m.state.SetLoading("requests", true)

	return []tea.Cmd{
		fetchDashboardCmd(m.services, m.state.RequestedPeriod()),
		loadKeysCmd(m.services),
		loadRequestsCmd(m.services, 1),
	}
}

func (m *Model) handlePeriodChanged(msg PeriodChangedMsg) []tea.Cmd {
	m.state.RequestPeriod(msg.Period)
	m.state.SetLoading("dashboard", true)
	return []tea.Cmd{fetchDashboardCmd(m.services, msg.Period)}
}

func (m *Model) handleDashboardLoaded(msg DashboardLoadedMsg) []tea.Cmd {
	// Responses for periods the user has navigated away from are stale.
	if msg.Period != m.state.RequestedPeriod() {
		return nil
	}

	m.state.SetLoading("dashboard", false)

	var cmds []tea.Cmd
	if msg.Error != nil {
		cmds = m.notifyRequestError("Failed to load dashboard", msg.Error)
	}

	if m.shouldApplyDashboard(msg.Dashboard) {
		m.state.SetDashboard(msg.Dashboard)
	}
	return cmds
}

// shouldApplyDashboard decides whether a loaded dashboard replaces the
// current one. A cached fallback never overwrites live data already on
// screen for the same period.
func (m *Model) shouldApplyDashboard(dash *analytics.Dashboard) bool {
	if dash == nil {
		return false
	}
	if !dash.Cached {
		return true
	}
	cur := m.state.GetDashboard()
	return cur == nil || cur.Cached || cur.Period != dash.Period
}

func (m *Model) handleKeysLoaded(msg KeysLoadedMsg) []tea.Cmd {
	m.state.SetLoading("keys", false)
	if msg.Error != nil {
		return m.notifyRequestError("Failed to load keys", msg.Error)
	}
	m.state.SetKeys(msg.Keys)
	return nil
}

func (m *Model) handleKeyCreated(msg KeyCreatedMsg) []tea.Cmd {
	if msg.Error != nil {
		return m.notifyRequestError("Failed to create key", msg.Error)
	}
	return []tea.Cmd{
		notifySuccessCmd("Key created"),
		loadKeysCmd(m.services),
	}
}

func (m *Model) handleKeyDeleted(msg KeyDeletedMsg) []tea.Cmd {
	if msg.Error != nil {
		return m.notifyRequestError("Failed to delete key", msg.Error)
	}
	return []tea.Cmd{
		notifySuccessCmd("Key deleted"),
		loadKeysCmd(m.services),
	}
}

func (m *Model) handleRequestsLoaded(msg RequestsLoadedMsg) []tea.Cmd {
	m.state.SetLoading("requests", false)
	if msg.Error != nil {
		return m.notifyRequestError("Failed to load requests", msg.Error)
	}
	m.state.SetRequests(msg.Page)
	return nil
}

// notifyRequestError reports a failed backend call. An auth rejection
// means the session died server-side; the session manager has already
// handled the logout, so skip the redundant toast.
func (m *Model) notifyRequestError(context string, err error) []tea.Cmd {
	if errors.Is(err, api.ErrUnauthorized) {
		return nil
	}
	return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("%s: %v", context, err))}
}

func (m *Model) handleAddNotification(msg AddNotificationMsg) []tea.Cmd {
	var cmds []tea.Cmd
	id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
	if msg.Duration > 0 {
		cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
	}
	return cmds
}

func (m *Model) handleRefresh(msg RefreshMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if m.services == nil || !m.state.IsAuthenticated() {
		return cmds
	}

	switch msg.Resource {
	case "all":
		cmds = append(cmds, m.loadAuthenticatedData()...)
	case "dashboard":
		m.state.SetLoading("dashboard", true)
		cmds = append(cmds, fetchDashboardCmd(m.services, m.state.RequestedPeriod()))
	case "keys":
		m.state.SetLoading("keys", true)
		cmds = append(cmds, loadKeysCmd(m.services))
	case "requests":
		m.state.SetLoading("requests", true)
		page := 1
		if reqs := m.state.GetRequests(); reqs != nil {
			page = reqs.Page
		}
		cmds = append(cmds, loadRequestsCmd(m.services, page))
	}
	return cmds
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateTabSizes() {
	contentHeight := m.height - 5
	contentHeight = max(0, contentHeight)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// The login form owns all keys except quit while it is visible.
	if m.showingLogin() {
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil

	case key.Matches(msg, m.keymap.Tab1):
		m.activeTab = TabDashboard
		m.updateTabSizes()
		return nil

	case key.Matches(msg, m.keymap.Tab2):
		m.activeTab = TabKeys
		m.updateTabSizes()
		return nil

	case key.Matches(msg, m.keymap.Tab3):
		m.activeTab = TabRequests
		m.updateTabSizes()
		return nil

	case key.Matches(msg, m.keymap.Tab4):
		m.activeTab = TabAccount
		m.updateTabSizes()
		return nil

	case key.Matches(msg, m.keymap.NextTab):
		if !m.showHelp {
			m.activeTab = TabID((int(m.activeTab) + 1) % len(m.tabs))
			m.updateTabSizes()
		}
		return nil

	case key.Matches(msg, m.keymap.PrevTab):
		if !m.showHelp {
			m.activeTab = TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs))
			m.updateTabSizes()
		}
		return nil

	case key.Matches(msg, m.keymap.Refresh):
		return func() tea.Msg { return RefreshMsg{Resource: "all"} }

	case key.Matches(msg, m.keymap.Escape):
		if m.showHelp {
			m.showHelp = false
			return nil
		}
	}

	return nil
}

// View renders the application UI.
func (m *Model) View() string {
	if !m.ready {
		return m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View()))
	}

	var mainView string

	if m.state.IsInitialLoading() {
		mainView = styles.CenterBoth(
			fmt.Sprintf("%s Resolving session...", m.spinner.View()),
			m.width, m.height,
		)
	} else if m.showingLogin() {
		mainView = m.login.View()
	} else {
		var b strings.Builder
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
		if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
			b.WriteString(m.tabs[m.activeTab].View())
		}
		mainView = b.String()
	}

	if m.showHelp {
		helpView := m.renderHelp()
		mainView = m.overlayCentered(mainView, helpView)
	}

	notifications := m.renderNotifications()
	if len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayHeight := len(overlayLines)
	overlayWidth := lipgloss.Width(overlay)

	y := (m.height - overlayHeight) / 2
	x := (m.width - overlayWidth) / 2

	if y < 0 {
		y = 0
	}
	if x < 0 {
		x = 0
	}

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNavbar() string {
	var tabs []string

	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toast := m.styles.Toast.Render(content)
		toasts = append(toasts, toast)
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	if len(toasts) == 0 {
		return mainView
	}

	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)

	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			padding := strings.Repeat(" ", startX-mainLineWidth)
			mainLines[lineIdx] = mainLine + padding + toastLine
		} else {
			truncated := ansi.Truncate(mainLine, startX, "")
			mainLines[lineIdx] = truncated + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Navigation"))
	lines = append(lines, "  1-4        Switch tabs")
	lines = append(lines, "  Tab        Next tab")
	lines = append(lines, "  Shift+Tab  Previous tab")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Actions"))
	lines = append(lines, "  r          Refresh data")
	lines = append(lines, "  ?          Toggle help")
	lines = append(lines, "  q/Ctrl+C   Quit")
	lines = append(lines, "")

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		tabHelp := m.tabs[m.activeTab].ShortHelp()
		if len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(fmt.Sprintf("%s Tab", m.tabNames[m.activeTab])))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
		}
	}

	lines = append(lines, "")
	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

// refreshTickCmd schedules the next periodic dashboard refresh.
func refreshTickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = time.Minute
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RefreshTickMsg{Time: t}
	})
}
