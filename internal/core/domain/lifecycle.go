package domain

// LifecycleState is the soft-delete state of an account.
type LifecycleState string

const (
	StateActive      LifecycleState = "active"
	StateDeactivated LifecycleState = "deactivated"
)

// Valid reports whether s is a known state.
func (s LifecycleState) Valid() bool {
	return s == StateActive || s == StateDeactivated
}
