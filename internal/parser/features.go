// Package parser turns movie metadata into text the vectorizer can consume.
package parser

import (
	"strings"

	"github.com/raphaelgruber/movierec/internal/models"
)

// SelectedFeatures lists the columns combined into the feature string, in order.
var SelectedFeatures = []string{"genres", "keywords", "tagline", "cast", "director"}

// Feature returns the value of a selected feature column for m.
// Unknown names return "".
func Feature(m models.Movie, name string) string {
	switch name {
	case "genres":
		return m.Genres
	case "keywords":
		return m.Keywords
	case "tagline":
		return m.Tagline
	case "cast":
		return m.Cast
	case "director":
		return m.Director
	default:
		return ""
	}
}

// Combine joins the selected features of m with single spaces.
// Missing fields are empty, so a movie without any metadata yields four spaces.
func Combine(m models.Movie) string {
	parts := make([]string, len(SelectedFeatures))
	for i, name := range SelectedFeatures {
		parts[i] = Feature(m, name)
	}
	return strings.Join(parts, " ")
}

// CombineAll builds one composite feature string per movie, in table order.
func CombineAll(movies []models.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = Combine(m)
	}
	return out
}
