package core

type CallState int

const (
	CallStateUnknown CallState = iota
	CallStateExecuting
	CallStateExecutingFailed
	CallStateRetrieving
	CallStateRetrievingFailed
	CallStateCollected
	CallStateCanceled
)

func CallStateFromString(s string) CallState {
	switch s {
	case CallStateExecuting.String():
		return CallStateExecuting
	case CallStateExecutingFailed.String():
		return CallStateExecutingFailed

	case CallStateRetrieving.String():
		return CallStateRetrieving
	case CallStateRetrievingFailed.String():
		return CallStateRetrievingFailed

	case CallStateCollected.String():
		return CallStateCollected
	case CallStateCanceled.String():
		return CallStateCanceled

	default:
		return CallStateUnknown
	}
}

func (s CallState) String() string {
	switch s {
	case CallStateExecuting:
		return "executing"
	case CallStateExecutingFailed:
		return "executing_failed"

	case CallStateRetrieving:
		return "retrieving"
	case CallStateRetrievingFailed:
		return "retrieving_failed"

	case CallStateCollected:
		return "collected"
	case CallStateCanceled:
		return "canceled"

	default:
		return "unknown"
	}
}

// IsFinal reports whether the call can no longer change its state.
func (s CallState) IsFinal() bool {
	switch s {
	case CallStateExecutingFailed, CallStateRetrievingFailed, CallStateCollected, CallStateCanceled:
		return true
	default:
		return false
	}
}
