package model

// Action is the pull request webhook action as an explicit variant.
// Modeling the action as a closed set keeps the unhandled cases
// (reopened, anything unrecognized) visible instead of falling through
// a chain of string comparisons.
type Action int

const (
	// ActionUnknown covers every action the reconciler does not act on.
	ActionUnknown Action = iota
	// ActionOpened creates the pull request record.
	ActionOpened
	// ActionClosed transitions the record to closed, creating it first if missing.
	ActionClosed
	// ActionSynchronize records the new head commit and refreshes the stored record.
	ActionSynchronize
	// ActionReopened is accepted as input but deliberately not handled.
	ActionReopened
)

// ParseAction maps the raw action string to its variant.
func ParseAction(action string) Action {
	switch action {
	case "opened":
		return ActionOpened
	case "closed":
		return ActionClosed
	case "synchronize":
		return ActionSynchronize
	case "reopened":
		return ActionReopened
	default:
		return ActionUnknown
	}
}

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionOpened:
		return "opened"
	case ActionClosed:
		return "closed"
	case ActionSynchronize:
		return "synchronize"
	case ActionReopened:
		return "reopened"
	default:
		return "unknown"
	}
}
