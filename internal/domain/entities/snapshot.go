package entities

import (
	"maps"
	"time"
)

// LatestSnapshotKey is the only key a snapshot is ever stored under
const LatestSnapshotKey = "latest"

// PriceRecord is one row of the government price feed exactly as received.
// Fields (commodity, state, district, market, modal_price...) are never validated or normalized.
type PriceRecord map[string]any

// Snapshot is the cached copy of the full price feed
type Snapshot struct {
	Key       string        `json:"key"`
	Records   []PriceRecord `json:"records"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func NewSnapshot(records []PriceRecord, updatedAt time.Time) *Snapshot {
	if records == nil {
		records = []PriceRecord{}
	}
	return &Snapshot{
		Key:       LatestSnapshotKey,
		Records:   records,
		UpdatedAt: updatedAt,
	}
}

// Total returns the number of records held by the snapshot
func (s *Snapshot) Total() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// IsEmpty reports whether the snapshot is missing or carries no records.
// An empty snapshot is treated the same as a missing one by readers.
func (s *Snapshot) IsEmpty() bool {
	return s.Total() == 0
}

// Clone returns a copy that shares no slices or maps with s
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		Key:       s.Key,
		Records:   CloneRecords(s.Records),
		UpdatedAt: s.UpdatedAt,
	}
}

// CloneRecords copies the slice and every record map
func CloneRecords(records []PriceRecord) []PriceRecord {
	out := make([]PriceRecord, len(records))
	for i, r := range records {
		out[i] = maps.Clone(r)
	}
	return out
}
