package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/catalog"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/dashboard"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/logging"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
)

// Commands are the side-effecting operations the App can trigger. The App
// itself never touches the network or the session store directly; it
// receives results via messages.
type Commands struct {
	LoadItems   func(view model.View, query string) tea.Cmd
	LoadStats   func() tea.Cmd
	SaveItem    func(item model.Item) tea.Cmd
	MarkViewed  func(item model.Item) tea.Cmd
	Login       func(username, password string) tea.Cmd
	ChangeCreds func(newUsername, newPassword string) tea.Cmd
	// WatchSession blocks on the session event channel and re-arms itself.
	WatchSession func() tea.Cmd
	OpenURL      func(url string)
}

type mode int

const (
	modeDashboard mode = iota
	modeLogin
	modeSettings
)

// App is the root Bubble Tea model.
type App struct {
	cmds     Commands
	state    *dashboard.State
	debounce time.Duration

	search    textinput.Model
	searching bool
	spin      spinner.Model
	loading   bool
	notice    string

	cursor       int
	scrollOffset int

	mode     mode
	authed   bool
	login    loginModel
	settings settingsModel

	width  int
	height int
	ready  bool
}

// NewApp creates the root model. When authed is false the app starts on the
// sign-in screen and defers all fetching until a session exists.
func NewApp(cmds Commands, state *dashboard.State, debounce time.Duration, authed bool) App {
	search := textinput.New()
	search.Placeholder = "search pens"
	search.Prompt = ""
	search.CharLimit = 80

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := modeDashboard
	if !authed {
		m = modeLogin
	}

	return App{
		cmds:     cmds,
		state:    state,
		debounce: debounce,
		search:   search,
		spin:     spin,
		mode:     m,
		authed:   authed,
		loading:  authed,
		login:    newLoginModel(),
		settings: newSettingsModel(),
	}
}

// Init starts the session watcher and, when already signed in, the first
// fetch.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if a.cmds.WatchSession != nil {
		cmds = append(cmds, a.cmds.WatchSession())
	}
	if a.authed {
		cmds = append(cmds, a.fetchItems(), a.fetchStats(), a.spin.Tick)
	}
	if a.mode == modeLogin {
		cmds = append(cmds, a.login.focusFirst())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		if !a.loading && !a.login.busy && !a.settings.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case ItemsLoaded:
		return a.handleItemsLoaded(msg)

	case StatsLoaded:
		if msg.Err != nil {
			// Stale counts keep rendering; a stats hiccup is not worth a
			// notice.
			logging.Error("stats fetch failed", "error", msg.Err)
			return a, nil
		}
		a.state.SetCounts(msg.Counts)
		return a, nil

	case SaveResult:
		return a.handleSaveResult(msg)

	case ViewedResult:
		if msg.Err != nil {
			logging.Warn("viewed mark failed", "id", msg.ID, "error", msg.Err)
		}
		return a, nil

	case QuerySettledMsg:
		if !a.state.QuerySettled(msg.Gen) {
			return a, nil
		}
		logging.Debug("search settled", "query", a.state.Query())
		a.loading = true
		return a, tea.Batch(a.fetchItems(), a.spin.Tick)

	case RestoreScrollMsg:
		if msg.View != a.state.ActiveView() {
			return a, nil
		}
		a.restoreScroll()
		return a, nil

	case SessionChanged:
		return a.handleSessionChanged(msg)

	case LoginResult:
		return a.handleLoginResult(msg)

	case ChangeResult:
		return a.handleChangeResult(msg)
	}

	return a, nil
}

func (a App) handleItemsLoaded(msg ItemsLoaded) (tea.Model, tea.Cmd) {
	a.loading = false

	if msg.Err != nil {
		// The previous item set stays on screen.
		logging.Error("items fetch failed",
			"view", msg.View, "query", msg.Query, "fetch_id", msg.FetchID, "error", msg.Err)
		a.notice = noticeFor(msg.Err)
		return a, nil
	}

	logging.Debug("items loaded",
		"view", msg.View, "query", msg.Query, "fetch_id", msg.FetchID, "count", len(msg.Items))

	// Last response wins, even if the user has since moved on; the view
	// derivation re-filters whatever set is current.
	a.state.SetItems(msg.Items)
	a.clampCursor()

	view := a.state.ActiveView()
	return a, func() tea.Msg { return RestoreScrollMsg{View: view} }
}

func (a App) handleSaveResult(msg SaveResult) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// No rollback. The optimistic flip stays until the next refetch.
		logging.Error("save toggle persist failed", "id", msg.ID, "error", msg.Err)
		a.notice = "Couldn't update saved status. " + noticeFor(msg.Err)
		return a, nil
	}

	a.state.ApplySaveResult(msg.Item)
	a.clampCursor()
	return a, a.fetchStats()
}

func (a App) handleSessionChanged(msg SessionChanged) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{}
	if a.cmds.WatchSession != nil {
		cmds = append(cmds, a.cmds.WatchSession())
	}

	if msg.Token == "" {
		a.authed = false
		a.mode = modeLogin
		a.login = newLoginModel()
		return a, tea.Batch(cmds...)
	}

	if !a.authed {
		a.authed = true
		a.mode = modeDashboard
		a.loading = true
		cmds = append(cmds, a.fetchItems(), a.fetchStats(), a.spin.Tick)
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleLoginResult(msg LoginResult) (tea.Model, tea.Cmd) {
	a.login.busy = false
	if msg.Err != nil {
		if errors.Is(msg.Err, catalog.ErrBadCredentials) {
			a.login.err = "Invalid username or password."
		} else {
			a.login.err = noticeFor(msg.Err)
		}
		return a, nil
	}
	// The session store publishes the new token; SessionChanged drives the
	// switch to the dashboard.
	a.login.err = ""
	return a, nil
}

func (a App) handleChangeResult(msg ChangeResult) (tea.Model, tea.Cmd) {
	a.settings.busy = false
	if msg.Err != nil {
		a.settings.err = noticeFor(msg.Err)
		return a, nil
	}
	a.settings = newSettingsModel()
	a.notice = "Credentials updated. Sign in with the new ones."
	return a, nil
}

// handleKeyMsg processes keyboard input per mode.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses a notice.
	if a.notice != "" {
		a.notice = ""
	}

	switch a.mode {
	case modeLogin:
		return a.handleLoginKeys(msg)
	case modeSettings:
		return a.handleSettingsKeys(msg)
	}
	return a.handleDashboardKeys(msg)
}

func (a App) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		return a.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "/":
		a.searching = true
		return a, a.search.Focus()

	case "esc":
		return a.clearSearch()

	case "1":
		return a.switchView(model.ViewToday)
	case "2":
		return a.switchView(model.ViewLast3Days)
	case "3":
		return a.switchView(model.ViewSaved)

	case "tab":
		return a.switchView(nextView(a.state.ActiveView(), 1))
	case "shift+tab":
		return a.switchView(nextView(a.state.ActiveView(), -1))

	case "j", "down":
		if a.cursor < len(a.visible())-1 {
			a.cursor++
			a.ensureCursorVisible()
		}
		return a, nil

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
			a.ensureCursorVisible()
		}
		return a, nil

	case "g", "home":
		a.cursor = 0
		a.scrollOffset = 0
		return a, nil

	case "G", "end":
		if n := len(a.visible()); n > 0 {
			a.cursor = n - 1
			a.ensureCursorVisible()
		}
		return a, nil

	case "s":
		return a.toggleSave()

	case "enter", "o":
		return a.openSelected()

	case "r":
		a.loading = true
		return a, tea.Batch(a.fetchItems(), a.fetchStats(), a.spin.Tick)

	case ",":
		a.mode = modeSettings
		a.settings = newSettingsModel()
		return a, a.settings.focusFirst()
	}

	return a, nil
}

// handleSearchKeys routes keys into the search input and schedules a settle
// tick for every edit.
func (a App) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searching = false
		a.search.Blur()
		return a.clearSearch()
	case "enter":
		a.searching = false
		a.search.Blur()
		return a, nil
	case "ctrl+c":
		return a, tea.Quit
	}

	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)

	if v := a.search.Value(); v != before {
		gen := a.state.QueryEdited(v)
		return a, tea.Batch(cmd, a.settleTick(gen))
	}
	return a, cmd
}

// clearSearch wipes the search text. The empty query settles through the
// same debounce window as any other edit.
func (a App) clearSearch() (tea.Model, tea.Cmd) {
	if a.search.Value() == "" && a.state.Query() == "" {
		return a, nil
	}
	a.search.SetValue("")
	gen := a.state.QueryEdited("")
	return a, a.settleTick(gen)
}

// switchView records the outgoing view's scroll position, activates the
// target, and refetches. The stale item set keeps rendering until the
// response arrives.
func (a App) switchView(v model.View) (tea.Model, tea.Cmd) {
	if v == a.state.ActiveView() {
		return a, nil
	}
	a.state.RecordScroll(a.state.ActiveView(), a.scrollOffset)
	a.state.SetView(v)
	a.restoreScroll()
	a.loading = true
	return a, tea.Batch(a.fetchItems(), a.spin.Tick)
}

func (a App) toggleSave() (tea.Model, tea.Cmd) {
	items := a.visible()
	if len(items) == 0 || a.cursor >= len(items) {
		return a, nil
	}

	item, ok := a.state.ToggleSaved(items[a.cursor].ID)
	if !ok {
		return a, nil
	}
	a.clampCursor()

	if a.cmds.SaveItem == nil {
		return a, nil
	}
	return a, a.cmds.SaveItem(item)
}

func (a App) openSelected() (tea.Model, tea.Cmd) {
	items := a.visible()
	if len(items) == 0 || a.cursor >= len(items) {
		return a, nil
	}
	item := items[a.cursor]

	if a.cmds.OpenURL != nil && item.URL != "" {
		a.cmds.OpenURL(item.URL)
	}

	if item.Viewed {
		return a, nil
	}
	a.state.MarkViewed(item.ID)
	item.Viewed = true
	if a.cmds.MarkViewed == nil {
		return a, nil
	}
	return a, a.cmds.MarkViewed(item)
}

func (a App) fetchItems() tea.Cmd {
	if a.cmds.LoadItems == nil {
		return nil
	}
	return a.cmds.LoadItems(a.state.ActiveView(), a.state.Query())
}

func (a App) fetchStats() tea.Cmd {
	if a.cmds.LoadStats == nil {
		return nil
	}
	return a.cmds.LoadStats()
}

func (a App) settleTick(gen int) tea.Cmd {
	return tea.Tick(a.debounce, func(time.Time) tea.Msg {
		return QuerySettledMsg{Gen: gen}
	})
}

// visible derives the item sequence for the active view right now.
func (a App) visible() []model.Item {
	return a.state.Visible(time.Now())
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if n == 0 {
		a.cursor = 0
		a.scrollOffset = 0
		return
	}
	if a.cursor >= n {
		a.cursor = n - 1
	}
	a.ensureCursorVisible()
}

// restoreScroll re-applies the recorded offset for the active view, clamped
// to the current content.
func (a *App) restoreScroll() {
	offset := a.state.ScrollOffset(a.state.ActiveView())
	if max := MaxScrollOffset(len(a.visible()), a.listHeight()); offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	a.scrollOffset = offset
	a.cursor = offset
}

func (a *App) ensureCursorVisible() {
	perPage := a.listHeight() / cardLines
	if perPage < 1 {
		perPage = 1
	}
	if a.cursor < a.scrollOffset {
		a.scrollOffset = a.cursor
	}
	if a.cursor >= a.scrollOffset+perPage {
		a.scrollOffset = a.cursor - perPage + 1
	}
}

// listHeight is the rows left for cards after the header, tabs, search row,
// and status bar.
func (a App) listHeight() int {
	h := a.height - 4
	if a.notice != "" {
		h--
	}
	if h < cardLines {
		h = cardLines
	}
	return h
}

// nextView cycles through the views in display order.
func nextView(v model.View, step int) model.View {
	views := model.Views()
	for i, candidate := range views {
		if candidate == v {
			return views[(i+step+len(views))%len(views)]
		}
	}
	return views[0]
}

// noticeFor maps a fetch failure to the short text shown in the notice bar.
func noticeFor(err error) string {
	var te *catalog.TransportError
	var pe *catalog.ProtocolError
	var fe *catalog.FormatError
	switch {
	case errors.As(err, &te):
		return "Can't reach the catalog. Check your connection."
	case errors.As(err, &pe):
		return fmt.Sprintf("The catalog returned an error (status %d).", pe.Status)
	case errors.As(err, &fe):
		return "The catalog sent an unexpected response."
	}
	return err.Error()
}

// Cursor returns the cursor position (for testing).
func (a App) Cursor() int { return a.cursor }

// ScrollOffset returns the current scroll offset (for testing).
func (a App) ScrollOffset() int { return a.scrollOffset }

// Notice returns the current notice text (for testing).
func (a App) Notice() string { return a.notice }
