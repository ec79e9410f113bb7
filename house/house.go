// Package house is the reference orchestration layer over the core engine:
// an in-memory registry of lots that serializes all updates to one auction
// behind a per-lot lock. The core operates on immutable snapshots, so without
// this critical section two concurrent bids could both validate against a
// stale highest bid; every mutation here holds the lot's lock from read to
// swap.
package house

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palengke-io/bulungan/auctionapi"
	"github.com/palengke-io/bulungan/core"
	"github.com/palengke-io/bulungan/money"
	"github.com/palengke-io/bulungan/settlement"
)

var (
	// ErrUnknownLot is returned for operations on a lot that was never registered.
	ErrUnknownLot = errors.New("unknown lot")
	// ErrLotExists is returned when registering a lot ID twice.
	ErrLotExists = errors.New("lot already registered")
	// ErrNotStartable is returned by Open when the window is not eligible to start.
	ErrNotStartable = errors.New("auction not eligible to start")
	// ErrAlreadyRan is returned by Open after a lot's auction has already run.
	ErrAlreadyRan = errors.New("auction already ran")
)

// lotEntry pairs an auction snapshot with the lock that serializes updates
// to it. started disambiguates the closed status: a closed lot that already
// started is terminal and can never reopen.
type lotEntry struct {
	mu      sync.Mutex
	state   core.AuctionState
	started bool
}

// House tracks every lot's auction and applies core operations under
// per-lot serialization. Safe for concurrent use.
type House struct {
	mu    sync.RWMutex
	lots  map[string]*lotEntry
	terms settlement.Config
	clock core.Clock
}

// New creates a House applying the given settlement terms. A nil clock means
// the system clock.
func New(terms settlement.Config, clock core.Clock) *House {
	return &House{
		lots:  make(map[string]*lotEntry),
		terms: terms,
		clock: clock,
	}
}

// Register schedules an auction for a lot. The window starts in the closed
// (not yet started) state regardless of the status supplied.
func (h *House) Register(lotID string, window core.AuctionWindow) error {
	if !window.EndTime.After(window.StartTime) {
		return fmt.Errorf("invalid window for lot %s: end time must be after start time", lotID)
	}
	if window.BidIncrement <= 0 {
		return fmt.Errorf("invalid window for lot %s: bid increment must be positive", lotID)
	}
	window.Status = core.StatusClosed

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.lots[lotID]; exists {
		return fmt.Errorf("lot %s: %w", lotID, ErrLotExists)
	}
	h.lots[lotID] = &lotEntry{
		state: core.AuctionState{Window: window},
	}
	log.Printf("INFO: Registered lot %s (min %s, increment %s)",
		lotID, money.Format(window.MinimumBid), money.Format(window.BidIncrement))
	return nil
}

func (h *House) entry(lotID string) (*lotEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entry, ok := h.lots[lotID]
	if !ok {
		return nil, fmt.Errorf("lot %s: %w", lotID, ErrUnknownLot)
	}
	return entry, nil
}

// Open transitions a scheduled lot to the open state once core.CanStart
// reports eligibility. A lot whose auction already ran can never reopen.
func (h *House) Open(lotID string) error {
	entry, err := h.entry(lotID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.started {
		return fmt.Errorf("lot %s: %w", lotID, ErrAlreadyRan)
	}
	if !core.CanStart(entry.state.Window, h.clock) {
		return fmt.Errorf("lot %s: %w", lotID, ErrNotStartable)
	}
	entry.state.Window.Status = core.StatusOpen
	entry.started = true
	log.Printf("INFO: Opened auction for lot %s", lotID)
	return nil
}

// PlaceBid mints a bid for the amount, validates it against the lot's current
// snapshot, and swaps in the updated snapshot — all under the lot's lock, so
// a stale highest bid can never be raced past. Returns the accepted bid and
// the resulting snapshot, or the core's typed rejection.
func (h *House) PlaceBid(lotID, bidderID string, amount money.Money) (core.Bid, core.AuctionState, error) {
	entry, err := h.entry(lotID)
	if err != nil {
		return core.Bid{}, core.AuctionState{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	bid := core.Bid{
		ID:        uuid.NewString(),
		LotID:     lotID,
		BidderID:  bidderID,
		Amount:    amount,
		Timestamp: h.now(),
	}

	next, err := core.AddBid(entry.state, bid, h.clock)
	if err != nil {
		log.Printf("INFO: Rejected bid on lot %s from %s (%s): %v",
			lotID, bidderID, money.Format(amount), err)
		return core.Bid{}, entry.state, err
	}

	entry.state = next
	log.Printf("INFO: Accepted bid %s on lot %s from %s (%s), %d bids total",
		bid.ID, lotID, bidderID, money.Format(amount), next.TotalBids)
	return bid, next, nil
}

// Snapshot returns the lot's current auction state.
func (h *House) Snapshot(lotID string) (core.AuctionState, error) {
	entry, err := h.entry(lotID)
	if err != nil {
		return core.AuctionState{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.state, nil
}

// EncodeSnapshot serializes the lot's current state for the persistence
// collaborator.
func (h *House) EncodeSnapshot(lotID string) ([]byte, error) {
	state, err := h.Snapshot(lotID)
	if err != nil {
		return nil, err
	}
	return auctionapi.EncodeSnapshot(lotID, state, h.now())
}

// Close ends the lot's auction, persists the terminal status, settles the
// winning amount when there is one, and stamps a verifiable receipt. Closing
// twice returns core.ErrAlreadyClosed.
func (h *House) Close(lotID string) (auctionapi.ClosureReport, error) {
	entry, err := h.entry(lotID)
	if err != nil {
		return auctionapi.ClosureReport{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	result, err := core.Close(entry.state)
	if err != nil {
		return auctionapi.ClosureReport{}, fmt.Errorf("lot %s: %w", lotID, err)
	}
	entry.state.Window.Status = result.FinalStatus

	report := auctionapi.ClosureReport{
		Type:        "closure_report",
		LotID:       lotID,
		FinalStatus: result.FinalStatus,
		WinningBid:  result.WinningBid,
		TotalBids:   result.TotalBids,
		ClosedAt:    h.now(),
	}

	var winningBidID string
	var gross money.Money
	if result.WinningBid != nil {
		winningBidID = result.WinningBid.ID
		gross = result.WinningBid.Amount
		breakdown := h.terms.Settle(gross)
		report.Breakdown = &breakdown
		if breakdown.NetToSupplier < 0 {
			log.Printf("WARNING: Negative net for lot %s: fees exceed gross %s",
				lotID, money.Format(gross))
		}
	}

	report.ReceiptNonce = uuid.NewString()
	report.Receipt = auctionapi.ComputeClosureReceipt(lotID, winningBidID, gross, report.ReceiptNonce)

	log.Printf("INFO: Closed lot %s: winner=%s, gross=%s, bids=%d",
		lotID, orNone(winningBidID), money.Format(gross), result.TotalBids)
	return report, nil
}

func (h *House) now() time.Time {
	if h.clock != nil {
		return h.clock.Now()
	}
	return time.Now()
}

func orNone(id string) string {
	if id == "" {
		return "none"
	}
	return id
}
