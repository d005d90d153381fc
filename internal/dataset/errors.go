package dataset

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable indicates the dataset could not be read or parsed.
// Use errors.Is() to check for it; the UI shows it as a visible error.
var ErrDataUnavailable = errors.New("dataset unavailable")

// unavailable wraps err with ErrDataUnavailable, keeping err inspectable.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDataUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
}
