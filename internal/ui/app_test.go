package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/catalog"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/dashboard"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
)

type loadCall struct {
	view  model.View
	query string
}

// mockCmds records command factory invocations without doing any work.
type mockCmds struct {
	loads   []loadCall
	saved   []model.Item
	viewed  []model.Item
	stats   int
	opened  []string
	logins  int
	changes int
}

func (m *mockCmds) commands() Commands {
	noop := func() tea.Msg { return nil }
	return Commands{
		LoadItems: func(view model.View, query string) tea.Cmd {
			m.loads = append(m.loads, loadCall{view, query})
			return noop
		},
		LoadStats: func() tea.Cmd {
			m.stats++
			return noop
		},
		SaveItem: func(item model.Item) tea.Cmd {
			m.saved = append(m.saved, item)
			return noop
		},
		MarkViewed: func(item model.Item) tea.Cmd {
			m.viewed = append(m.viewed, item)
			return noop
		},
		Login: func(username, password string) tea.Cmd {
			m.logins++
			return noop
		},
		ChangeCreds: func(newUsername, newPassword string) tea.Cmd {
			m.changes++
			return noop
		},
		OpenURL: func(u string) {
			m.opened = append(m.opened, u)
		},
	}
}

func todayStamp() string {
	return time.Now().Format(time.RFC3339)
}

func testItems() []model.Item {
	return []model.Item{
		{ID: "1", Name: "Nakaya Piccolo", URL: "https://example.com/1", CreatedAt: todayStamp()},
		{ID: "2", Name: "Pelikan M800", URL: "https://example.com/2", CreatedAt: todayStamp(), Saved: true},
		{ID: "3", Name: "Aurora 88", URL: "https://example.com/3", CreatedAt: todayStamp()},
	}
}

func newTestApp(t *testing.T, mock *mockCmds, st *dashboard.State) App {
	t.Helper()
	app := NewApp(mock.commands(), st, 350*time.Millisecond, true)
	resized, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return resized.(App)
}

func press(t *testing.T, app App, key string) (App, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := app.Update(msg)
	return next.(App), cmd
}

func TestInitFetchesWhenAuthed(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.commands(), dashboard.New(), 350*time.Millisecond, true)

	if cmd := app.Init(); cmd == nil {
		t.Fatal("Init should return a command")
	}
	if len(mock.loads) != 1 || mock.stats != 1 {
		t.Errorf("loads=%d stats=%d, want 1 and 1", len(mock.loads), mock.stats)
	}
	if mock.loads[0].view != model.ViewToday {
		t.Errorf("initial view = %v, want today", mock.loads[0].view)
	}
}

func TestInitDefersWhenSignedOut(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.commands(), dashboard.New(), 350*time.Millisecond, false)

	app.Init()
	if len(mock.loads) != 0 || mock.stats != 0 {
		t.Error("signed-out app must not fetch anything")
	}
}

func TestItemsLoadedAppliesAndRestoresScroll(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	app := newTestApp(t, mock, st)

	next, cmd := app.Update(ItemsLoaded{View: model.ViewToday, Items: testItems()})
	app = next.(App)

	if len(st.Items()) != 3 {
		t.Fatalf("items not applied, got %d", len(st.Items()))
	}
	if cmd == nil {
		t.Fatal("expected a scroll-restore command")
	}
	if _, ok := cmd().(RestoreScrollMsg); !ok {
		t.Error("follow-up message should be RestoreScrollMsg")
	}
}

func TestItemsLoadedErrorKeepsPreviousSet(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	st.SetItems(testItems())
	app := newTestApp(t, mock, st)

	next, _ := app.Update(ItemsLoaded{View: model.ViewToday, Err: &catalog.TransportError{Op: "list"}})
	app = next.(App)

	if len(st.Items()) != 3 {
		t.Error("a failed fetch must not clear the previous items")
	}
	if app.Notice() == "" {
		t.Error("a failed fetch should surface a notice")
	}

	// Any key dismisses the notice.
	app, _ = press(t, app, "j")
	if app.Notice() != "" {
		t.Error("notice should clear on keypress")
	}
}

func TestStatsErrorKeepsPreviousCounts(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	st.SetCounts(model.Counts{Today: 5})
	app := newTestApp(t, mock, st)

	app.Update(StatsLoaded{Err: &catalog.ProtocolError{Op: "stats", Status: 500}})
	if st.Counts().Today != 5 {
		t.Error("a failed stats fetch must not clear the previous counts")
	}
}

func TestToggleSaveOptimistic(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	st.SetItems(testItems())
	app := newTestApp(t, mock, st)

	app, _ = press(t, app, "s")

	if len(mock.saved) != 1 {
		t.Fatalf("expected one persist call, got %d", len(mock.saved))
	}
	if !mock.saved[0].Saved {
		t.Error("persisted item should carry the flipped value")
	}
	if got, _ := st.ItemByID("1"); !got.Saved {
		t.Error("flip must land locally before the persist resolves")
	}
}

func TestDoubleToggleFinalValueWins(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	st.SetItems(testItems())
	app := newTestApp(t, mock, st)

	app, _ = press(t, app, "s")
	app, _ = press(t, app, "s")

	if len(mock.saved) != 2 {
		t.Fatalf("expected two persist calls, got %d", len(mock.saved))
	}
	if !mock.saved[0].Saved || mock.saved[1].Saved {
		t.Errorf("persist sequence should be true then false, got %v %v",
			mock.saved[0].Saved, mock.saved[1].Saved)
	}
}

func TestSaveFailureKeepsOptimisticValue(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	st.SetItems(testItems())
	app := newTestApp(t, mock, st)

	app, _ = press(t, app, "s")
	next, _ := app.Update(SaveResult{ID: "1", Err: &catalog.TransportError{Op: "save"}})
	app = next.(App)

	if got, _ := st.ItemByID("1"); !got.Saved {
		t.Error("no rollback: the optimistic value must survive the failure")
	}
	if app.Notice() == "" {
		t.Error("a failed persist should surface a notice")
	}
}

func TestUnsaveInSavedViewRemovesAndRefreshesStats(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	st.SetItems(testItems())
	st.SetView(model.ViewSaved)
	app := newTestApp(t, mock, st)

	// Item "2" is the only saved one; cursor 0 points at it.
	app, _ = press(t, app, "s")

	// Gone from the derived sequence immediately.
	if len(st.Visible(time.Now())) != 0 {
		t.Error("unsaved item should vanish from the saved view at once")
	}

	item := mock.saved[0]
	statsBefore := mock.stats
	next, _ := app.Update(SaveResult{ID: item.ID, Item: item})
	app = next.(App)

	if _, ok := st.ItemByID("2"); ok {
		t.Error("reconcile should prune the raw set")
	}
	if mock.stats != statsBefore+1 {
		t.Error("a successful save toggle should refresh stats")
	}
}

func TestQuerySettleStaleGenerationIgnored(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	app := newTestApp(t, mock, st)

	g1 := st.QueryEdited("n")
	g2 := st.QueryEdited("nak")

	loadsBefore := len(mock.loads)
	next, _ := app.Update(QuerySettledMsg{Gen: g1})
	app = next.(App)
	if len(mock.loads) != loadsBefore {
		t.Error("stale generation must not trigger a fetch")
	}

	next, _ = app.Update(QuerySettledMsg{Gen: g2})
	app = next.(App)
	if len(mock.loads) != loadsBefore+1 {
		t.Fatal("latest generation should trigger exactly one fetch")
	}
	if call := mock.loads[len(mock.loads)-1]; call.query != "nak" {
		t.Errorf("fetch query = %q, want %q", call.query, "nak")
	}
}

func TestSwitchViewRecordsAndRestoresScroll(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()

	items := make([]model.Item, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, model.Item{ID: string(rune('a' + i)), Name: "Pen", CreatedAt: todayStamp()})
	}
	st.SetItems(items)
	app := newTestApp(t, mock, st)
	app.scrollOffset = 7
	app.cursor = 7

	// Leave for the saved view, then come back.
	app, _ = press(t, app, "3")
	if st.ScrollOffset(model.ViewToday) != 7 {
		t.Fatalf("recorded offset = %d, want 7", st.ScrollOffset(model.ViewToday))
	}

	app, _ = press(t, app, "1")
	next, _ := app.Update(ItemsLoaded{View: model.ViewToday, Items: items})
	app = next.(App)
	next, _ = app.Update(RestoreScrollMsg{View: model.ViewToday})
	app = next.(App)

	if app.ScrollOffset() != 7 {
		t.Errorf("restored offset = %d, want 7", app.ScrollOffset())
	}
}

func TestRestoreScrollClampsToContent(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	st.SetItems(testItems())
	st.RecordScroll(model.ViewToday, 500)
	app := newTestApp(t, mock, st)

	next, _ := app.Update(RestoreScrollMsg{View: model.ViewToday})
	app = next.(App)

	if app.ScrollOffset() > len(testItems()) {
		t.Errorf("offset %d not clamped", app.ScrollOffset())
	}
}

func TestOpenSelectedMarksViewedOnce(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	st.SetItems(testItems())
	app := newTestApp(t, mock, st)

	app, _ = press(t, app, "enter")

	if len(mock.opened) != 1 || mock.opened[0] != "https://example.com/1" {
		t.Errorf("opened = %v", mock.opened)
	}
	if len(mock.viewed) != 1 || !mock.viewed[0].Viewed {
		t.Fatalf("viewed calls = %v", mock.viewed)
	}
	if got, _ := st.ItemByID("1"); !got.Viewed {
		t.Error("item not marked viewed locally")
	}

	// Viewed is monotonic: opening again re-opens but does not re-mark.
	app, _ = press(t, app, "enter")
	if len(mock.opened) != 2 {
		t.Error("second open should still launch the URL")
	}
	if len(mock.viewed) != 1 {
		t.Error("viewed must only be persisted once")
	}
}

func TestSessionSignOutReturnsToLogin(t *testing.T) {
	mock := &mockCmds{}
	app := newTestApp(t, mock, dashboard.New())

	next, _ := app.Update(SessionChanged{Token: ""})
	app = next.(App)

	if app.mode != modeLogin {
		t.Error("empty session token should force the sign-in screen")
	}
}

func TestSessionSignInFetches(t *testing.T) {
	mock := &mockCmds{}
	app := NewApp(mock.commands(), dashboard.New(), 350*time.Millisecond, false)
	resized, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = resized.(App)

	next, _ := app.Update(SessionChanged{Token: "fresh"})
	app = next.(App)

	if app.mode != modeDashboard {
		t.Error("a new token should land on the dashboard")
	}
	if len(mock.loads) != 1 || mock.stats != 1 {
		t.Errorf("loads=%d stats=%d after sign-in, want 1 and 1", len(mock.loads), mock.stats)
	}
}

func TestRefreshKey(t *testing.T) {
	mock := &mockCmds{}
	st := dashboard.New()
	st.SetItems(testItems())
	app := newTestApp(t, mock, st)

	app, _ = press(t, app, "r")
	if len(mock.loads) != 1 || mock.stats != 1 {
		t.Errorf("refresh should refetch items and stats, got loads=%d stats=%d", len(mock.loads), mock.stats)
	}
}
