package booking

import (
	"net/http"
	"strings"

	"shareit/internal/pkg/apperror"
)

// State is the temporal view requested by a listing call.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps raw textual input to a State, case-insensitively.
// An absent value defaults to ALL; anything unrecognized is rejected
// with the offending raw value, never silently coerced.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	switch State(strings.ToUpper(raw)) {
	case StateAll:
		return StateAll, nil
	case StateCurrent:
		return StateCurrent, nil
	case StatePast:
		return StatePast, nil
	case StateFuture:
		return StateFuture, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	default:
		return "", apperror.Wrap(ErrUnknownState, http.StatusBadRequest, "Unknown state: "+raw)
	}
}
