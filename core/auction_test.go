package core

import (
	"errors"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"

	"github.com/palengke-io/bulungan/money"
)

// mockClock provides a deterministic clock for testing
type mockClock struct {
	now time.Time
}

func (m *mockClock) Now() time.Time {
	return m.now
}

var (
	windowStart = time.Date(2025, 3, 14, 6, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
)

func openWindow() AuctionWindow {
	return AuctionWindow{
		Status:       StatusOpen,
		StartTime:    windowStart,
		EndTime:      windowEnd,
		MinimumBid:   10000,
		BidIncrement: 500,
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		now      time.Time
		expected bool
	}{
		{"open within window", StatusOpen, windowStart.Add(30 * time.Minute), true},
		{"open at start boundary", StatusOpen, windowStart, true},
		{"open at end boundary", StatusOpen, windowEnd, true},
		{"open before start", StatusOpen, windowStart.Add(-time.Second), false},
		{"open after end", StatusOpen, windowEnd.Add(time.Second), false},
		{"closed within window", StatusClosed, windowStart.Add(30 * time.Minute), false},
		{"closed at start boundary", StatusClosed, windowStart, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := openWindow()
			w.Status = tt.status
			check.Equal(t, tt.expected, IsActive(w, &mockClock{now: tt.now}))
		})
	}
}

func TestHasEnded(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		now      time.Time
		expected bool
	}{
		{"before end", StatusOpen, windowEnd.Add(-time.Second), false},
		{"exactly at end", StatusOpen, windowEnd, false},
		{"strictly after end", StatusOpen, windowEnd.Add(time.Millisecond), true},
		{"elapsed but never formally closed", StatusOpen, windowEnd.Add(time.Hour), true},
		{"elapsed and closed", StatusClosed, windowEnd.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := openWindow()
			w.Status = tt.status
			check.Equal(t, tt.expected, HasEnded(w, &mockClock{now: tt.now}))
		})
	}
}

func TestCanStart(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		now      time.Time
		expected bool
	}{
		{"closed before start time", StatusClosed, windowStart.Add(-time.Minute), false},
		{"closed at start time", StatusClosed, windowStart, true},
		{"closed after start time", StatusClosed, windowStart.Add(time.Minute), true},
		{"already open", StatusOpen, windowStart.Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := openWindow()
			w.Status = tt.status
			check.Equal(t, tt.expected, CanStart(w, &mockClock{now: tt.now}))
		})
	}
}

func activeAuction(highest money.Money, bids ...Bid) AuctionState {
	return AuctionState{
		Window:            openWindow(),
		CurrentHighestBid: highest,
		TotalBids:         len(bids),
		Bids:              bids,
	}
}

func TestValidateBid(t *testing.T) {
	clock := &mockClock{now: windowStart.Add(time.Hour)}

	tests := []struct {
		name            string
		auction         AuctionState
		amount          money.Money
		reason          RejectionReason
		requiredMinimum money.Money
	}{
		{
			name:    "first bid at minimum accepted",
			auction: activeAuction(0),
			amount:  10000,
		},
		{
			name:    "meets increment over current highest",
			auction: activeAuction(12000),
			amount:  12500,
		},
		{
			name:    "exceeds increment comfortably",
			auction: activeAuction(12000),
			amount:  20000,
		},
		{
			name:            "below configured minimum",
			auction:         activeAuction(0),
			amount:          9999,
			reason:          ReasonBelowMinimum,
			requiredMinimum: 10000,
		},
		{
			name:            "below required increment",
			auction:         activeAuction(12000),
			amount:          12200,
			reason:          ReasonBelowIncrement,
			requiredMinimum: 12500,
		},
		{
			name:            "equal to current highest",
			auction:         activeAuction(12000),
			amount:          12000,
			reason:          ReasonBelowIncrement,
			requiredMinimum: 12500,
		},
		{
			name:            "zero amount reported against minimum first",
			auction:         activeAuction(0),
			amount:          0,
			reason:          ReasonBelowMinimum,
			requiredMinimum: 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBid(tt.auction, tt.amount, clock)
			if tt.reason == "" {
				check.NoError(t, err)
				return
			}
			var rejection *BidRejection
			assert.True(t, errors.As(err, &rejection))
			check.Equal(t, tt.reason, rejection.Reason)
			check.Equal(t, tt.requiredMinimum, rejection.RequiredMinimum)
		})
	}
}

func TestValidateBid_InactiveAuction(t *testing.T) {
	auction := activeAuction(0)

	tests := []struct {
		name  string
		setup func(*AuctionState)
		now   time.Time
	}{
		{"closed status", func(a *AuctionState) { a.Window.Status = StatusClosed }, windowStart.Add(time.Hour)},
		{"before window", func(a *AuctionState) {}, windowStart.Add(-time.Hour)},
		{"after window", func(a *AuctionState) {}, windowEnd.Add(time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := auction
			tt.setup(&a)
			err := ValidateBid(a, 20000, &mockClock{now: tt.now})
			var rejection *BidRejection
			assert.True(t, errors.As(err, &rejection))
			check.Equal(t, ReasonNotActive, rejection.Reason)
		})
	}
}

func TestValidateBid_Idempotent(t *testing.T) {
	auction := activeAuction(12000)
	clock := &mockClock{now: windowStart.Add(time.Hour)}

	first := ValidateBid(auction, 12200, clock)
	second := ValidateBid(auction, 12200, clock)

	var r1, r2 *BidRejection
	assert.True(t, errors.As(first, &r1))
	assert.True(t, errors.As(second, &r2))
	check.Equal(t, r1.Reason, r2.Reason)
	check.Equal(t, r1.RequiredMinimum, r2.RequiredMinimum)
	check.Equal(t, money.Money(12000), auction.CurrentHighestBid)
}

func TestNextMinimumBid(t *testing.T) {
	t.Run("no bids yet", func(t *testing.T) {
		check.Equal(t, money.Money(10000), NextMinimumBid(activeAuction(0)))
	})
	t.Run("with current highest", func(t *testing.T) {
		check.Equal(t, money.Money(12500), NextMinimumBid(activeAuction(12000)))
	})
}

func TestAddBid(t *testing.T) {
	clock := &mockClock{now: windowStart.Add(time.Hour)}
	original := activeAuction(0)

	first := Bid{ID: "bid-1", LotID: "lot-7", BidderID: "buyer-a", Amount: 10000, Timestamp: clock.now}
	updated, err := AddBid(original, first, clock)
	assert.NoError(t, err)

	check.Equal(t, money.Money(10000), updated.CurrentHighestBid)
	check.Equal(t, 1, updated.TotalBids)
	check.Equal(t, 1, len(updated.Bids))

	// The input snapshot stays untouched.
	check.Equal(t, money.Money(0), original.CurrentHighestBid)
	check.Equal(t, 0, original.TotalBids)
	check.Equal(t, 0, len(original.Bids))

	second := Bid{ID: "bid-2", LotID: "lot-7", BidderID: "buyer-b", Amount: 10500, Timestamp: clock.now.Add(time.Minute)}
	updated, err = AddBid(updated, second, clock)
	assert.NoError(t, err)
	check.Equal(t, money.Money(10500), updated.CurrentHighestBid)
	check.Equal(t, 2, updated.TotalBids)
}

func TestAddBid_RejectionLeavesStateUnchanged(t *testing.T) {
	clock := &mockClock{now: windowStart.Add(time.Hour)}
	auction := activeAuction(12000)

	bid := Bid{ID: "bid-low", Amount: 12200, Timestamp: clock.now}
	result, err := AddBid(auction, bid, clock)

	var rejection *BidRejection
	assert.True(t, errors.As(err, &rejection))
	check.Equal(t, ReasonBelowIncrement, rejection.Reason)
	check.Equal(t, auction.TotalBids, result.TotalBids)
	check.Equal(t, auction.CurrentHighestBid, result.CurrentHighestBid)
}

func TestClose(t *testing.T) {
	t.Run("zero bids is a valid unsold outcome", func(t *testing.T) {
		result, err := Close(activeAuction(0))
		assert.NoError(t, err)
		check.Nil(t, result.WinningBid)
		check.Equal(t, StatusClosed, result.FinalStatus)
		check.Equal(t, 0, result.TotalBids)
	})

	t.Run("with bids reports winner and count", func(t *testing.T) {
		bids := []Bid{
			{ID: "bid-1", BidderID: "buyer-a", Amount: 10000, Timestamp: windowStart.Add(10 * time.Minute)},
			{ID: "bid-2", BidderID: "buyer-b", Amount: 11000, Timestamp: windowStart.Add(20 * time.Minute)},
		}
		result, err := Close(activeAuction(11000, bids...))
		assert.NoError(t, err)
		assert.NotNil(t, result.WinningBid)
		check.Equal(t, "bid-2", result.WinningBid.ID)
		check.Equal(t, 2, result.TotalBids)
	})

	t.Run("closing twice is a caller error", func(t *testing.T) {
		auction := activeAuction(0)
		auction.Window.Status = StatusClosed
		_, err := Close(auction)
		check.True(t, errors.Is(err, ErrAlreadyClosed))
	})
}
