package sale

import "fmt"

// State is the lifecycle state of a sale. The integer values are part
// of the storage contract and must not change: rows persist them
// verbatim in the sales.state column.
type State int16

const (
	StatePending   State = 0
	StateCompleted State = 1
	StateVoided    State = 2
)

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case StatePending, StateCompleted, StateVoided:
		return true
	}
	return false
}

// HoldsStock reports whether a sale in this state has stock deducted
// from the ledger. Voided sales never hold stock.
func (s State) HoldsStock() bool {
	return s == StatePending || s == StateCompleted
}

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCompleted:
		return "completed"
	case StateVoided:
		return "voided"
	}
	return fmt.Sprintf("unknown(%d)", int16(s))
}

// stockEffect returns the sign of the ledger movement a transition
// causes: +1 returns stock to the ledger, -1 consumes it, 0 leaves it
// untouched. Pending and Completed both hold stock, so moving between
// them never touches the ledger.
func stockEffect(from, to State) int64 {
	switch {
	case from.HoldsStock() && !to.HoldsStock():
		return 1
	case !from.HoldsStock() && to.HoldsStock():
		return -1
	}
	return 0
}
