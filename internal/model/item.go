// Package model defines the data types shared across the dashboard.
package model

// View identifies one of the three dashboard views. Views are mutually
// exclusive: exactly one is active at a time.
type View string

const (
	ViewToday     View = "today"
	ViewLast3Days View = "last3days"
	ViewSaved     View = "saved"
)

// Views lists the dashboard views in display order.
func Views() []View {
	return []View{ViewToday, ViewLast3Days, ViewSaved}
}

// Title returns the display label for the view.
func (v View) Title() string {
	switch v {
	case ViewToday:
		return "Today"
	case ViewLast3Days:
		return "Last 3 Days"
	case ViewSaved:
		return "Saved"
	}
	return string(v)
}

// Item is a single collectible listing as returned by the catalog service.
//
// CreatedAt and Date are both optional in the wire format and arrive as raw
// strings. CreatedAt wins when both are present; parsing happens at
// classification time so one malformed timestamp never poisons a response.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image,omitempty"`
	URL       string `json:"url"`
	Saved     bool   `json:"saved"`
	Viewed    bool   `json:"viewed"`
	CreatedAt string `json:"createdAt,omitempty"`
	Date      string `json:"date,omitempty"`
}

// CreationTimestamp resolves the raw creation timestamp for the item:
// createdAt first, then date. ok is false when the item carries neither.
func (it Item) CreationTimestamp() (ts string, ok bool) {
	if it.CreatedAt != "" {
		return it.CreatedAt, true
	}
	if it.Date != "" {
		return it.Date, true
	}
	return "", false
}

// Counts holds the aggregate totals computed server-side. They reflect the
// full remote corpus, not whatever subset happens to be fetched locally.
type Counts struct {
	Today     int `json:"today"`
	Last3Days int `json:"last3days"`
	Saved     int `json:"saved"`
}

// For returns the count for a single view.
func (c Counts) For(v View) int {
	switch v {
	case ViewToday:
		return c.Today
	case ViewLast3Days:
		return c.Last3Days
	case ViewSaved:
		return c.Saved
	}
	return 0
}
