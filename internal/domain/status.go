package domain

// ActionState is the per-event participation state shown by the views.
type ActionState string

const (
	StateIdle       ActionState = "idle"
	StateConfirming ActionState = "confirming"
	StateConfirmed  ActionState = "confirmed"
	StateCancelling ActionState = "cancelling"
)

// InFlight reports whether a backend or store mutation is running for the event.
func (s ActionState) InFlight() bool {
	return s == StateConfirming || s == StateCancelling
}

// User roles as returned by the backend.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Order defaults used by the participation flow.
const (
	PaymentMethodOnline = "online"
	DefaultPeopleCount  = 1
)
