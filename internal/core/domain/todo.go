package domain

import "time"

// PriorityLevel orders todo items by urgency.
type PriorityLevel int

const (
	PriorityNone PriorityLevel = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// Colour codes a list may be tagged with. The palette is fixed; anything
// outside it is rejected at validation.
const (
	ColourWhite  = "#FFFFFF"
	ColourRed    = "#FF5733"
	ColourOrange = "#FFC300"
	ColourYellow = "#FFFF66"
	ColourGreen  = "#CCFF99"
	ColourBlue   = "#6666FF"
	ColourPurple = "#9966CC"
	ColourGrey   = "#999999"
)

// TodoList groups items under a titled, colour-coded collection.
type TodoList struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Colour    string    `json:"colour"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TodoItem is a single entry in a list.
type TodoItem struct {
	ID        string        `json:"id"`
	ListID    string        `json:"list_id"`
	Title     string        `json:"title"`
	Note      string        `json:"note,omitempty"`
	Priority  PriorityLevel `json:"priority"`
	Done      bool          `json:"done"`
	Reminder  *time.Time    `json:"reminder,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
