package core

import (
	"sort"

	"github.com/palengke-io/bulungan/money"
)

// IsActive reports whether the window currently accepts bids: status open and
// the current instant within [StartTime, EndTime]. Both boundary instants
// count as active.
func IsActive(w AuctionWindow, clock Clock) bool {
	if w.Status != StatusOpen {
		return false
	}
	now := orSystem(clock).Now()
	return !now.Before(w.StartTime) && !now.After(w.EndTime)
}

// HasEnded reports whether the current instant is strictly after EndTime.
// Independent of Status: an auction whose time elapsed but was never formally
// closed still reports true.
func HasEnded(w AuctionWindow, clock Clock) bool {
	return orSystem(clock).Now().After(w.EndTime)
}

// CanStart reports whether a not-yet-started auction is eligible to open:
// status closed (the pre-start state, see Status) and the current instant at
// or past StartTime. Note this is also true for a closed-out auction past its
// start; the orchestrator must track whether a lot already ran.
func CanStart(w AuctionWindow, clock Clock) bool {
	return w.Status == StatusClosed && !orSystem(clock).Now().Before(w.StartTime)
}

// ValidateBid checks a candidate amount against the auction snapshot. The
// checks run in a fixed order and the first failure wins:
//
//  1. the window must be active
//  2. the amount must meet the configured minimum
//  3. the amount must meet current highest plus increment
//  4. the amount must be positive
//
// A nil return means the bid is admissible. Failures are *BidRejection.
func ValidateBid(a AuctionState, amount money.Money, clock Clock) error {
	if !IsActive(a.Window, clock) {
		return &BidRejection{Reason: ReasonNotActive}
	}
	if amount < a.Window.MinimumBid {
		return &BidRejection{Reason: ReasonBelowMinimum, RequiredMinimum: a.Window.MinimumBid}
	}
	if required := a.CurrentHighestBid + a.Window.BidIncrement; amount < required {
		return &BidRejection{Reason: ReasonBelowIncrement, RequiredMinimum: required}
	}
	if amount <= 0 {
		return &BidRejection{Reason: ReasonInvalidAmount}
	}
	return nil
}

// NextMinimumBid returns the smallest admissible amount for the next bid:
// the configured minimum when no bids exist, else current highest plus
// increment.
func NextMinimumBid(a AuctionState) money.Money {
	if a.CurrentHighestBid == 0 {
		return a.Window.MinimumBid
	}
	return a.CurrentHighestBid + a.Window.BidIncrement
}

// WinningBid resolves the winner among the auction's bids: highest amount
// first, ties broken by earliest timestamp (first come, first served).
// Returns nil when no bids exist. Insertion order never affects the result.
func WinningBid(a AuctionState) *Bid {
	if len(a.Bids) == 0 {
		return nil
	}

	candidates := make([]Bid, len(a.Bids))
	copy(candidates, a.Bids)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Amount != candidates[j].Amount {
			return candidates[i].Amount > candidates[j].Amount
		}
		return candidates[i].Timestamp.Before(candidates[j].Timestamp)
	})

	winner := candidates[0]
	return &winner
}

// AddBid validates the bid and returns a new snapshot with it appended,
// CurrentHighestBid raised if the bid tops it, and TotalBids incremented.
// The input snapshot is never mutated. On rejection the input snapshot is
// returned unchanged along with the *BidRejection.
func AddBid(a AuctionState, bid Bid, clock Clock) (AuctionState, error) {
	if err := ValidateBid(a, bid.Amount, clock); err != nil {
		return a, err
	}

	bids := make([]Bid, len(a.Bids), len(a.Bids)+1)
	copy(bids, a.Bids)
	bids = append(bids, bid)

	highest := a.CurrentHighestBid
	if bid.Amount > highest {
		highest = bid.Amount
	}

	return AuctionState{
		Window:            a.Window,
		CurrentHighestBid: highest,
		TotalBids:         a.TotalBids + 1,
		Bids:              bids,
	}, nil
}

// Close resolves the final outcome of an open auction: the winning bid (nil
// for an unsold lot), the terminal status, and the bid count. Returns
// ErrAlreadyClosed if the window is already closed. Close does not mutate the
// snapshot's status; persisting the closed window is the caller's job.
func Close(a AuctionState) (ClosureResult, error) {
	if a.Window.Status == StatusClosed {
		return ClosureResult{}, ErrAlreadyClosed
	}
	return ClosureResult{
		WinningBid:  WinningBid(a),
		FinalStatus: StatusClosed,
		TotalBids:   a.TotalBids,
	}, nil
}
