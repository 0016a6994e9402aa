package ui

import (
	"fmt"
	"strings"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
)

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	switch a.mode {
	case modeLogin:
		return a.login.view(a.spin.View())
	case modeSettings:
		return a.settings.view(a.spin.View())
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("Rare Pen Collector"))
	b.WriteString("\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n")
	b.WriteString(a.renderSearchRow())
	b.WriteString("\n")

	items := a.visible()
	b.WriteString(RenderCards(items, a.cursor, a.scrollOffset, a.width, a.listHeight(), a.emptyMessage()))
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}

	if a.notice != "" {
		b.WriteString(NoticeStyle.Width(a.width).Render(a.notice + " (any key to dismiss)"))
		b.WriteString("\n")
	}

	b.WriteString(RenderStatusBar(a.cursor, len(items), a.width, a.loading, a.spin.View()))

	return b.String()
}

// renderTabs draws one tab per view with its aggregate count. Counts come
// from the stats endpoint and cover the whole corpus, not the fetched page.
func (a App) renderTabs() string {
	counts := a.state.Counts()
	active := a.state.ActiveView()

	tabs := make([]string, 0, 3)
	for i, v := range model.Views() {
		label := fmt.Sprintf("%d:%s (%d)", i+1, v.Title(), counts.For(v))
		if v == active {
			tabs = append(tabs, ActiveTab.Render(label))
		} else {
			tabs = append(tabs, InactiveTab.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (a App) renderSearchRow() string {
	if a.searching {
		return SearchBar.Render(SearchPrompt.Render("/") + " " + a.search.View())
	}
	if q := a.state.Query(); q != "" {
		return SearchBar.Render(SearchPrompt.Render("/") + " " + q + StatusBarText.Render("  (esc clears)"))
	}
	return SearchBar.Render(StatusBarText.Render("press / to search"))
}

// emptyMessage picks the empty-state text for the active view, taking an
// active search into account.
func (a App) emptyMessage() string {
	if q := a.state.Query(); q != "" {
		return fmt.Sprintf("No matches for %q.", q)
	}
	switch a.state.ActiveView() {
	case model.ViewToday:
		return "Nothing listed today yet. Press r to refresh."
	case model.ViewLast3Days:
		return "Nothing from the last 3 days."
	case model.ViewSaved:
		return "No saved pens yet. Press s on a pen to save it."
	}
	return "No items."
}
