package splash

import "errors"

// gameNotFoundError reports an unknown game id.
type gameNotFoundError struct{ id string }

func (e gameNotFoundError) Error() string { return "game not found: " + e.id }

// ErrGameNotFound returns an error for a game id that is not registered.
func ErrGameNotFound(id string) error { return gameNotFoundError{id: id} }

// IsGameNotFound reports whether err indicates an unknown game id.
func IsGameNotFound(err error) bool {
	var nf gameNotFoundError
	return errors.As(err, &nf)
}
