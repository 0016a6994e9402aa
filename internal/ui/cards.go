package ui

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/filter"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
)

// cardLines is how many terminal rows one item card occupies.
const cardLines = 2

// RenderCards renders the visible window of item cards. scrollOffset is an
// item index, not a row index; the window starts there and fills the
// available height.
func RenderCards(items []model.Item, cursor, scrollOffset, width, height int, emptyMsg string) string {
	if len(items) == 0 {
		return EmptyStyle.Render(emptyMsg)
	}

	if scrollOffset > len(items)-1 {
		scrollOffset = len(items) - 1
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	var b strings.Builder
	renderedLines := 0
	now := time.Now()

	for i := scrollOffset; i < len(items); i++ {
		if renderedLines+cardLines > height {
			break
		}
		b.WriteString(renderCard(items[i], i == cursor, width, now))
		renderedLines += cardLines
	}

	return b.String()
}

// renderCard renders one two-line item card: name with markers, then price
// and metadata.
func renderCard(item model.Item, selected bool, width int, now time.Time) string {
	marker := "♡"
	if item.Saved {
		marker = "♥"
	}

	name := item.Name
	nameWidth := width - 6
	if nameWidth < 20 {
		nameWidth = 20
	}
	name = truncate(name, nameWidth)

	var nameStyle = NormalCard
	switch {
	case selected:
		nameStyle = SelectedCard
	case item.Viewed:
		nameStyle = ViewedCard
	}

	line1 := nameStyle.Render(name) + " " + SavedMarker.Render(marker)

	detail := make([]string, 0, 4)
	if item.Price != "" {
		detail = append(detail, PriceStyle.Render(item.Price))
	}
	if d := extractDomain(item.URL); d != "" {
		detail = append(detail, d)
	}
	detail = append(detail, formatAge(item, now))
	if item.Viewed {
		detail = append(detail, "viewed")
	}

	line2 := CardDetail.Render("  " + strings.Join(detail, " · "))

	return line1 + "\n" + line2 + "\n"
}

// MaxScrollOffset returns the largest scroll offset that still shows a full
// window of cards, so a restored offset never scrolls past the content.
func MaxScrollOffset(itemCount, height int) int {
	perPage := height / cardLines
	if perPage < 1 {
		perPage = 1
	}
	max := itemCount - perPage
	if max < 0 {
		return 0
	}
	return max
}

// truncate shortens s to at most width runes with an ellipsis.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// extractDomain pulls the bare host out of an item URL for display.
func extractDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// formatAge renders a compact age for an item's resolved creation time.
// Unparseable timestamps show as a question mark rather than hiding the card.
func formatAge(item model.Item, now time.Time) string {
	ts, ok := item.CreationTimestamp()
	if !ok {
		return "new"
	}
	t, ok := filter.ParseTimestamp(ts)
	if !ok {
		return "?"
	}

	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

// RenderStatusBar renders the bottom bar: position, loading state, and key
// hints.
func RenderStatusBar(cursor, total, width int, loading bool, spin string) string {
	var left string
	if total == 0 {
		left = "0 items"
	} else {
		left = fmt.Sprintf("%d/%d", cursor+1, total)
	}
	if loading {
		left = spin + " " + left
	}

	hints := strings.Join([]string{
		StatusBarKey.Render("1-3") + StatusBarText.Render(" views"),
		StatusBarKey.Render("/") + StatusBarText.Render(" search"),
		StatusBarKey.Render("s") + StatusBarText.Render(" save"),
		StatusBarKey.Render("enter") + StatusBarText.Render(" open"),
		StatusBarKey.Render("r") + StatusBarText.Render(" refresh"),
		StatusBarKey.Render("q") + StatusBarText.Render(" quit"),
	}, "  ")

	bar := left + "  " + hints
	return StatusBar.Width(width).Render(bar)
}
