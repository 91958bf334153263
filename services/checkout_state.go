package services

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/omnilearn/models"
)

var ErrInvalidTransition = errors.New("invalid checkout transition")

type CheckoutEvent string

const (
	EventSubmitDetails    CheckoutEvent = "submit_details"
	EventBack             CheckoutEvent = "back"
	EventPaymentConfirmed CheckoutEvent = "payment_confirmed"
	EventVerified         CheckoutEvent = "verified"
	EventApproved         CheckoutEvent = "approved"
	EventCancel           CheckoutEvent = "cancel"
)

var checkoutTransitions = map[models.CheckoutStep]map[CheckoutEvent]models.CheckoutStep{
	models.StepDetails: {
		EventSubmitDetails: models.StepPayment,
		EventCancel:        models.StepCancelled,
	},
	models.StepPayment: {
		EventBack:             models.StepDetails,
		EventPaymentConfirmed: models.StepVerification,
		EventCancel:           models.StepCancelled,
	},
	models.StepVerification: {
		EventVerified: models.StepPending,
	},
	models.StepPending: {
		EventApproved: models.StepSuccess,
	},
}

// NextStep applies event to step. Verification can no longer be cancelled.
func NextStep(step models.CheckoutStep, event CheckoutEvent) (models.CheckoutStep, error) {
	next, ok := checkoutTransitions[step][event]
	if !ok {
		return step, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, step)
	}
	return next, nil
}

func IsTerminal(step models.CheckoutStep) bool {
	switch step {
	case models.StepPending, models.StepSuccess, models.StepCancelled:
		return true
	}
	return false
}
