package metering

import (
	"context"
	"time"

	"github.com/infogen/core/pkg/apperr"
)

// GenerationRecord is written at pipeline termination regardless of
// outcome, per §4.8 and §4.9 step 10. Failed generations record the
// failure kind, along with whatever tokens and cost were already spent
// before the failing stage (zero when it failed before the gateway call).
type GenerationRecord struct {
	GenerationID string
	CallerID     string
	PlanTier     PlanTier
	Archetype    string

	Succeeded bool
	Kind      apperr.Kind // apperr.Unknown when Succeeded

	InputTokens  int
	OutputTokens int
	CostUSD      float64

	StartedAt  time.Time
	FinishedAt time.Time
}

// RecordStore persists GenerationRecords. Writes are idempotent on
// GenerationID so re-delivery never double-counts, per §5.
type RecordStore interface {
	Put(ctx context.Context, rec GenerationRecord) error
}

// MemoryRecordStore is an in-process RecordStore for tests.
type MemoryRecordStore struct {
	records map[string]GenerationRecord
}

// NewMemoryRecordStore returns an empty MemoryRecordStore.
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{records: make(map[string]GenerationRecord)}
}

func (s *MemoryRecordStore) Put(ctx context.Context, rec GenerationRecord) error {
	s.records[rec.GenerationID] = rec
	return nil
}

// Get returns the record for id, if one was ever written.
func (s *MemoryRecordStore) Get(id string) (GenerationRecord, bool) {
	rec, ok := s.records[id]
	return rec, ok
}
