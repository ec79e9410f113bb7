// Package auctionapi defines the envelope types and codecs used by the
// layers surrounding the core engine: bid submission and outcome payloads for
// transport handlers, closure reports with verifiable receipts, and a compact
// snapshot codec for handing AuctionState to a persistence collaborator.
// The core itself defines no wire format; this package is that boundary.
package auctionapi

import (
	"time"

	"github.com/palengke-io/bulungan/core"
	"github.com/palengke-io/bulungan/money"
	"github.com/palengke-io/bulungan/settlement"
)

// BidOutcome reports the result of one bid submission. On rejection, Reason
// carries the machine-readable cause and RequiredMinimum the amount that
// would have been admissible (zero when not applicable), so handlers can
// render an actionable message.
type BidOutcome struct {
	Type            string               `json:"type"`
	Accepted        bool                 `json:"accepted"`
	Message         string               `json:"message"`
	Bid             *core.Bid            `json:"bid,omitempty"`
	Reason          core.RejectionReason `json:"reason,omitempty"`
	RequiredMinimum money.Money          `json:"required_minimum,omitempty"`
	NextMinimum     money.Money          `json:"next_minimum"`
	TotalBids       int                  `json:"total_bids"`
}

// ClosureReport is the full outcome of closing a lot: the winner (nil for an
// unsold lot), the settlement breakdown when there is one, and a digest the
// supplier can recompute to verify the reported figures.
type ClosureReport struct {
	Type         string                `json:"type"`
	LotID        string                `json:"lot_id"`
	FinalStatus  core.Status           `json:"final_status"`
	WinningBid   *core.Bid             `json:"winning_bid,omitempty"`
	TotalBids    int                   `json:"total_bids"`
	Breakdown    *settlement.Breakdown `json:"breakdown,omitempty"`
	Receipt      string                `json:"receipt,omitempty"`
	ReceiptNonce string                `json:"receipt_nonce,omitempty"`
	ClosedAt     time.Time             `json:"closed_at"`
}
