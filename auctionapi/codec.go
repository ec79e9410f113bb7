package auctionapi

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/palengke-io/bulungan/core"
)

// snapshotVersion guards against decoding snapshots written by an
// incompatible schema.
const snapshotVersion = 1

// Snapshot wraps an AuctionState for transfer between the orchestrator and
// whatever stores it.
type Snapshot struct {
	Version   int               `json:"version"`
	LotID     string            `json:"lot_id"`
	State     core.AuctionState `json:"state"`
	EncodedAt time.Time         `json:"encoded_at"`
}

// EncodeSnapshot serializes an auction snapshot to CBOR.
func EncodeSnapshot(lotID string, state core.AuctionState, encodedAt time.Time) ([]byte, error) {
	data, err := cbor.Marshal(Snapshot{
		Version:   snapshotVersion,
		LotID:     lotID,
		State:     state,
		EncodedAt: encodedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot for lot %s: %w", lotID, err)
	}
	return data, nil
}

// DecodeSnapshot deserializes a CBOR snapshot, rejecting unknown versions.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return snap, nil
}
