// Package core implements the auction state engine: activity windows, bid
// admissibility, winner resolution, and closure semantics. Every operation is
// a pure function over immutable value snapshots; the orchestration layer owns
// persistence and must serialize concurrent updates to the same auction.
package core

import (
	"time"

	"github.com/palengke-io/bulungan/money"
)

// Status is the two-state lifecycle marker of an auction window.
//
// StatusClosed is overloaded: it is both the initial "not yet started" state
// and the terminal "auction ended" state. CanStart distinguishes the two by
// time; there is no reopening transition either way.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// AuctionWindow describes when an auction accepts bids and on what terms.
// EndTime must be after StartTime; BidIncrement must be positive.
type AuctionWindow struct {
	Status       Status      `json:"status"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	MinimumBid   money.Money `json:"minimum_bid"`
	BidIncrement money.Money `json:"bid_increment"`
}

// Bid is a single offer on a lot. Bids are immutable once created; a rejected
// bid is simply never appended to the auction's bid list.
type Bid struct {
	ID        string      `json:"id"`
	LotID     string      `json:"lot_id"`
	BidderID  string      `json:"bidder_id"`
	Amount    money.Money `json:"amount"`
	Timestamp time.Time   `json:"timestamp"`
}

// AuctionState is the full snapshot of one auction: its window plus the bids
// received so far. CurrentHighestBid is the maximum bid amount, or zero when
// no bids exist; TotalBids always equals len(Bids). Insertion order of Bids
// carries no meaning — winner resolution sorts by amount, then timestamp.
type AuctionState struct {
	Window            AuctionWindow `json:"window"`
	CurrentHighestBid money.Money   `json:"current_highest_bid"`
	TotalBids         int           `json:"total_bids"`
	Bids              []Bid         `json:"bids"`
}

// ClosureResult is the outcome of closing an auction. WinningBid is nil for
// an unsold lot, which is a valid outcome, not an error.
type ClosureResult struct {
	WinningBid  *Bid   `json:"winning_bid,omitempty"`
	FinalStatus Status `json:"final_status"`
	TotalBids   int    `json:"total_bids"`
}
