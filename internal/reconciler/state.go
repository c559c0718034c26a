package reconciler

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition marks a bug in the upgrade flow, never a client error.
var ErrIllegalTransition = errors.New("illegal upgrade state transition")

// lifecycle of one upgrade attempt
type State string

const (
	StateInitiated        State = "initiated"
	StateOrderCreated     State = "order_created"
	StatePaymentReceived  State = "payment_received"
	StateSignatureValid   State = "signature_valid"
	StateSignatureInvalid State = "signature_invalid"
	StateApplied          State = "applied"
	StateRejected         State = "rejected"
)

var transitions = map[State][]State{
	StateInitiated:        {StateOrderCreated},
	StateOrderCreated:     {StatePaymentReceived},
	StatePaymentReceived:  {StateSignatureValid, StateSignatureInvalid},
	StateSignatureValid:   {StateApplied},
	StateSignatureInvalid: {StateRejected},
}

// reports whether no transition leaves s
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// tracks one attempt through the upgrade state machine
type attempt struct {
	state State
}

func newAttempt(from State) *attempt {
	return &attempt{state: from}
}

func (a *attempt) advance(to State) error {
	for _, next := range transitions[a.state] {
		if next == to {
			a.state = to
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, a.state, to)
}
