package auctionapi

import (
	"crypto/sha256"
	"fmt"

	"github.com/palengke-io/bulungan/money"
)

// ComputeClosureReceipt computes the digest stamped on a closure report.
// Suppliers verify a reported outcome by recomputing it from the published
// figures and the nonce.
//
// Formula: SHA256(lot_id + "|" + winning_bid_id + "|" + gross + "|" + nonce)
//
// The gross amount is formatted as whole centavos so the digest is stable
// regardless of how the amount was displayed. An unsold lot uses an empty
// winning bid ID and zero gross.
func ComputeClosureReceipt(lotID, winningBidID string, gross money.Money, nonce string) string {
	data := fmt.Sprintf("%s|%s|%d|%s", lotID, winningBidID, gross, nonce)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
