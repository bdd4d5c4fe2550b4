package sim

import (
	"errors"
	"fmt"
)

// ErrProviderNotFound is returned when no registered provider matches a sport key.
var ErrProviderNotFound = errors.New("no provider found")

// ValidationError reports a team set a competition format cannot accept.
// It is caller-correctable; nothing has been scheduled when it is returned.
type ValidationError struct {
	Format string
	Teams  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %d teams: %s", e.Format, e.Teams, e.Reason)
}

// InvalidTransitionError records a success draw that picked a kind the
// current event does not declare as a follow-up. The match keeps the
// previous event and carries on.
type InvalidTransitionError struct {
	Sport string
	From  string
	To    string
	Tick  int
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s is not a valid follow-up to %s (tick %d)", e.Sport, e.To, e.From, e.Tick)
}
