package core

import (
	"errors"
	"fmt"

	"github.com/palengke-io/bulungan/money"
)

// RejectionReason classifies why a candidate bid was refused.
type RejectionReason string

const (
	ReasonNotActive      RejectionReason = "auction_not_active"
	ReasonBelowMinimum   RejectionReason = "below_minimum"
	ReasonBelowIncrement RejectionReason = "below_increment"
	ReasonInvalidAmount  RejectionReason = "invalid_amount"
)

// ErrAlreadyClosed is returned by Close when the window is already closed.
// Closing is not idempotent; a second Close is a caller error.
var ErrAlreadyClosed = errors.New("auction already closed")

// BidRejection is the typed failure returned by ValidateBid and AddBid.
// RequiredMinimum is set for the two amount-threshold reasons so callers can
// render an actionable message rather than a generic "invalid bid".
type BidRejection struct {
	Reason          RejectionReason
	RequiredMinimum money.Money
}

func (e *BidRejection) Error() string {
	switch e.Reason {
	case ReasonNotActive:
		return "auction is not active"
	case ReasonBelowMinimum:
		return fmt.Sprintf("bid must be at least the minimum of %s", money.Format(e.RequiredMinimum))
	case ReasonBelowIncrement:
		return fmt.Sprintf("bid must be at least %s to beat the current highest", money.Format(e.RequiredMinimum))
	case ReasonInvalidAmount:
		return "bid amount must be a positive number of centavos"
	}
	return fmt.Sprintf("bid rejected: %s", e.Reason)
}
