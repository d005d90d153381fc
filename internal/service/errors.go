// Package service resolves free-text movie queries into ranked recommendations.
package service

import (
	"errors"

	"github.com/raphaelgruber/movierec/internal/dataset"
	"github.com/raphaelgruber/movierec/internal/metrics"
)

// Sentinel errors for query outcomes. Their text is shown to users verbatim.
var (
	ErrInvalidInput = errors.New("Please enter a valid movie name.")
	ErrNoMatch      = errors.New("No close match found for your movie. Please try another movie.")
)

// IsInvalidInput reports whether err is an empty-query error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNoMatch reports whether err means no title cleared the match cutoff.
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

// IsDataUnavailable reports whether err comes from a dataset that could not be loaded.
func IsDataUnavailable(err error) bool {
	return errors.Is(err, dataset.ErrDataUnavailable)
}

// Message returns the text to show a user for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case IsInvalidInput(err):
		return ErrInvalidInput.Error()
	case IsNoMatch(err):
		return ErrNoMatch.Error()
	case IsDataUnavailable(err):
		return "Movie data could not be loaded: " + err.Error()
	default:
		return err.Error()
	}
}

// Outcome classifies err for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case IsInvalidInput(err):
		return metrics.OutcomeInvalidInput
	case IsNoMatch(err):
		return metrics.OutcomeNoMatch
	case IsDataUnavailable(err):
		return metrics.OutcomeDataUnavailable
	default:
		return "error"
	}
}
