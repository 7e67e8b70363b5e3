package domain

import (
	"errors"
	"fmt"
)

// FlowState is a step of the checkout flow.
type FlowState string

const (
	FlowBrowsing           FlowState = "browsing"
	FlowCartPopulated      FlowState = "cart_populated"
	FlowDetailsEntered     FlowState = "details_entered"
	FlowSessionCreated     FlowState = "session_created"
	FlowPaymentWidgetShown FlowState = "payment_widget_shown"
	FlowPaymentSucceeded   FlowState = "payment_succeeded"
	FlowPaymentAbandoned   FlowState = "payment_abandoned"
	FlowCartCleared        FlowState = "cart_cleared"
	FlowConfirmationShown  FlowState = "confirmation_shown"
)

// ErrIllegalTransition is returned when a flow is moved along an edge it does not have.
var ErrIllegalTransition = errors.New("illegal checkout transition")

var flowEdges = map[FlowState][]FlowState{
	FlowBrowsing:           {FlowCartPopulated},
	FlowCartPopulated:      {FlowBrowsing, FlowDetailsEntered},
	FlowDetailsEntered:     {FlowCartPopulated, FlowSessionCreated},
	FlowSessionCreated:     {FlowPaymentWidgetShown, FlowDetailsEntered},
	FlowPaymentWidgetShown: {FlowPaymentSucceeded, FlowPaymentAbandoned},
	FlowPaymentSucceeded:   {FlowCartCleared},
	FlowPaymentAbandoned:   {FlowDetailsEntered},
	FlowCartCleared:        {FlowConfirmationShown},
	FlowConfirmationShown:  {FlowBrowsing},
}

// CanTransition reports whether to is reachable from from in one step.
func CanTransition(from, to FlowState) bool {
	for _, s := range flowEdges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CheckoutFlow tracks one visitor's progress through checkout.
type CheckoutFlow struct {
	state   FlowState
	history []FlowState
}

// NewCheckoutFlow starts a flow in the given state.
func NewCheckoutFlow(start FlowState) *CheckoutFlow {
	return &CheckoutFlow{state: start, history: []FlowState{start}}
}

// State returns the current state.
func (f *CheckoutFlow) State() FlowState { return f.state }

// History returns every state visited, oldest first.
func (f *CheckoutFlow) History() []FlowState {
	out := make([]FlowState, len(f.history))
	copy(out, f.history)
	return out
}

// Advance moves the flow to the next state.
func (f *CheckoutFlow) Advance(to FlowState) error {
	if !CanTransition(f.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.state, to)
	}
	f.state = to
	f.history = append(f.history, to)
	return nil
}

// AdvanceAll applies each step in order and stops at the first illegal one.
func (f *CheckoutFlow) AdvanceAll(steps ...FlowState) error {
	for _, s := range steps {
		if err := f.Advance(s); err != nil {
			return err
		}
	}
	return nil
}
