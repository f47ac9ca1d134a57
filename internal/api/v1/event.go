package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Event is a single protocol event observed on chain.
// Events are produced upstream and never mutated once observed.
type Event struct {
	// PartitionKey identifies the event kind, e.g. "warp_controller:create_job".
	// The event source groups and range-scans events by this key.
	PartitionKey string `json:"partition_key"`

	// Height is the block height the event was emitted at.
	// Events within a partition are ordered by height ascending.
	Height int64 `json:"height"`

	// Timestamp is the block time in unix seconds, carried as event metadata.
	// Bucketing always uses this value, never the height.
	Timestamp int64 `json:"timestamp"`

	// Payload is the event-kind specific body. Numbers are decoded as json.Number
	// so amounts never round-trip through float64.
	Payload map[string]interface{} `json:"payload"`
}

// Time returns the event timestamp as a UTC time.
func (e *Event) Time() time.Time {
	return time.Unix(e.Timestamp, 0).UTC()
}

// Validate ensures the event carries the attributes bucketing depends on.
func (e *Event) Validate() error {
	if e.PartitionKey == "" {
		return fmt.Errorf("partition_key is required")
	}
	if e.Height < 0 {
		return fmt.Errorf("height must be >= 0, got %d", e.Height)
	}
	if e.Timestamp <= 0 {
		return fmt.Errorf("timestamp is required")
	}
	return nil
}

// DecodePayload unmarshals a JSON payload keeping numbers as json.Number.
// An empty document yields an empty payload.
func DecodePayload(data []byte) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	if len(bytes.TrimSpace(data)) == 0 {
		return payload, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return payload, nil
}
