package cprompt

import "errors"

var (
	// ErrLimit is returned when a width limit or cursor bound is violated.
	ErrLimit = errors.New("cprompt: limit exceeded")

	// ErrConditionNotCallable is returned when a nil condition is registered.
	ErrConditionNotCallable = errors.New("cprompt: condition is not callable")

	// ErrFormattedType is returned for formatted entries whose key is empty or styled.
	ErrFormattedType = errors.New("cprompt: invalid formatted entry")

	// ErrReadCursorPosition is returned when the terminal's cursor position
	// report cannot be read or parsed.
	ErrReadCursorPosition = errors.New("cprompt: cannot read cursor position")

	// ErrKeyNotRecognized is returned by ParseKey for unknown key names.
	ErrKeyNotRecognized = errors.New("cprompt: key not recognized")

	// ErrInterrupted is returned when the user presses Ctrl-C.
	ErrInterrupted = errors.New("cprompt: interrupted")
)
