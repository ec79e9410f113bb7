// Package gateway is the bid-submission handler over the house orchestrator:
// it translates HTTP requests into core operations and rejection reasons into
// actionable JSON payloads.
package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/palengke-io/bulungan/auctionapi"
	"github.com/palengke-io/bulungan/core"
	"github.com/palengke-io/bulungan/house"
	"github.com/palengke-io/bulungan/money"
)

type Handler struct {
	House *house.House
	Clock core.Clock
}

// NewRouter wires the gateway routes.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/lots", h.registerLot)
	r.Get("/lots/{lotID}", h.getLot)
	r.Post("/lots/{lotID}/open", h.openLot)
	r.Post("/lots/{lotID}/bids", h.placeBid)
	r.Post("/lots/{lotID}/close", h.closeLot)

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type registerLotReq struct {
	LotID        string      `json:"lot_id"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	MinimumBid   money.Money `json:"minimum_bid"`
	BidIncrement money.Money `json:"bid_increment"`
}

func (h *Handler) registerLot(w http.ResponseWriter, r *http.Request) {
	var req registerLotReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.LotID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing lot_id"})
		return
	}

	err := h.House.Register(req.LotID, core.AuctionWindow{
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		MinimumBid:   req.MinimumBid,
		BidIncrement: req.BidIncrement,
	})
	switch {
	case errors.Is(err, house.ErrLotExists):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case err != nil:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusCreated, map[string]string{"lot_id": req.LotID, "status": string(core.StatusClosed)})
	}
}

func (h *Handler) openLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	err := h.House.Open(lotID)
	switch {
	case errors.Is(err, house.ErrUnknownLot):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, house.ErrAlreadyRan), errors.Is(err, house.ErrNotStartable):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"lot_id": lotID, "status": string(core.StatusOpen)})
	}
}

type lotStatusResp struct {
	LotID             string      `json:"lot_id"`
	Status            core.Status `json:"status"`
	CurrentHighestBid money.Money `json:"current_highest_bid"`
	TotalBids         int         `json:"total_bids"`
	NextMinimumBid    money.Money `json:"next_minimum_bid"`
	TimeRemainingMs   int64       `json:"time_remaining_ms"`
	TimeRemaining     string      `json:"time_remaining"`
}

func (h *Handler) getLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	state, err := h.House.Snapshot(lotID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	remaining := core.TimeRemaining(state, h.Clock)
	writeJSON(w, http.StatusOK, lotStatusResp{
		LotID:             lotID,
		Status:            state.Window.Status,
		CurrentHighestBid: state.CurrentHighestBid,
		TotalBids:         state.TotalBids,
		NextMinimumBid:    core.NextMinimumBid(state),
		TimeRemainingMs:   remaining.Milliseconds(),
		TimeRemaining:     core.FormatTimeRemaining(remaining),
	})
}

type placeBidReq struct {
	BidderID string      `json:"bidder_id"`
	Amount   money.Money `json:"amount"`
}

func (h *Handler) placeBid(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")

	var req placeBidReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.BidderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing bidder_id"})
		return
	}

	bid, state, err := h.House.PlaceBid(lotID, req.BidderID, req.Amount)

	var rejection *core.BidRejection
	switch {
	case errors.Is(err, house.ErrUnknownLot):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &rejection):
		writeJSON(w, http.StatusUnprocessableEntity, auctionapi.BidOutcome{
			Type:            "bid_outcome",
			Accepted:        false,
			Message:         rejection.Error(),
			Reason:          rejection.Reason,
			RequiredMinimum: rejection.RequiredMinimum,
			NextMinimum:     core.NextMinimumBid(state),
			TotalBids:       state.TotalBids,
		})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusCreated, auctionapi.BidOutcome{
			Type:        "bid_outcome",
			Accepted:    true,
			Message:     "bid accepted",
			Bid:         &bid,
			NextMinimum: core.NextMinimumBid(state),
			TotalBids:   state.TotalBids,
		})
	}
}

func (h *Handler) closeLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotID")
	report, err := h.House.Close(lotID)
	switch {
	case errors.Is(err, house.ErrUnknownLot):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, core.ErrAlreadyClosed):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, report)
	}
}
