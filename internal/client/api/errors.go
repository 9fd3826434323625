package api

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the API could not be reached or did not answer
	// in time.
	ErrUnavailable = errors.New("server unavailable")
	// ErrBadResponse means the API answered with something that is not a
	// JSON result object.
	ErrBadResponse = errors.New("malformed server response")
)

// mapError folds transport failures into ErrUnavailable while keeping the
// original cause in the chain. Cancellation by the caller is passed through.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
