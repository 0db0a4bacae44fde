package domain

import (
	"fmt"

	"foodrescue_portal/platform/apperr"
)

// Action is a named lifecycle operation. Action names double as the
// backend's mutation endpoint path segments.
type Action string

const (
	ActionReserve   Action = "reserve"
	ActionInTransit Action = "in-transit"
	ActionDelivered Action = "delivered"
	ActionCancel    Action = "cancel"
)

// Valid reports whether a is a known lifecycle action.
func (a Action) Valid() bool {
	switch a {
	case ActionReserve, ActionInTransit, ActionDelivered, ActionCancel:
		return true
	}
	return false
}

// Transition pairs an action with the status it produces.
type Transition struct {
	Action Action `json:"action"`
	Next   Status `json:"resultingStatus"`
}

// transitions is the exhaustive lifecycle table. Terminal statuses have no
// entry. Order within a slice is the order actions are presented to the user.
var transitions = map[Status][]Transition{
	StatusAvailable: {
		{Action: ActionReserve, Next: StatusReserved},
		{Action: ActionCancel, Next: StatusCancelled},
	},
	StatusReserved: {
		{Action: ActionInTransit, Next: StatusInTransit},
		{Action: ActionCancel, Next: StatusCancelled},
	},
	StatusInTransit: {
		{Action: ActionDelivered, Next: StatusDelivered},
	},
}

// AvailableActions returns the legal transitions for the given status, in
// presentation order. Pure and total: terminal or unknown statuses yield an
// empty slice. The returned slice is a copy.
func AvailableActions(status Status) []Transition {
	legal := transitions[status]
	out := make([]Transition, len(legal))
	copy(out, legal)
	return out
}

// CanApply resolves action against the current status, returning the
// resulting status. Illegal combinations fail with a typed invalid
// transition error; this function only enumerates legality and never
// performs the mutation itself.
func CanApply(status Status, action Action) (Status, error) {
	for _, t := range transitions[status] {
		if t.Action == action {
			return t.Next, nil
		}
	}
	return "", apperr.InvalidTransition(
		fmt.Sprintf("action %q is not allowed for status %q", action, status),
	).WithOp("offers.transition")
}
