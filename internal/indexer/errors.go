package indexer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow is returned when the requested current height is below the checkpoint.
	ErrInvalidWindow = errors.New("current height below checkpoint")
)

// wrapSentinel adds context to err and guarantees it matches sentinel with errors.Is.
// Store clients usually wrap the sentinel already; test doubles and third-party stores may not.
func wrapSentinel(sentinel error, op string, err error) error {
	if errors.Is(err, sentinel) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", sentinel, op, err)
}
