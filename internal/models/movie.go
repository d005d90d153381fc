// Package models defines data structures shared across the movierec packages.
package models

// OverviewNotAvailable is shown when the dataset has no overview column.
const OverviewNotAvailable = "Not available"

// Movie is one row of the movie dataset.
// Text fields that were empty in the source are stored as "".
type Movie struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	HasTitle bool   `json:"-"` // false when the title cell was empty
	Genres   string `json:"genres"`
	Keywords string `json:"keywords"`
	Tagline  string `json:"tagline"`
	Cast     string `json:"cast"`
	Director string `json:"director"`

	// Overview is nil when the dataset has no overview column at all.
	Overview *string `json:"overview,omitempty"`
}

// OverviewText returns the overview to display for the movie.
func (m Movie) OverviewText() string {
	if m.Overview == nil {
		return OverviewNotAvailable
	}
	return *m.Overview
}
