package store

import (
	"slices"
	"time"
)

// MemoryStore keeps everything in process. It backs tests and runs started
// without a data directory.
type MemoryStore struct {
	scores     []Score
	tombstones []Tombstone
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: DefaultTopTen(), now: time.Now}
}

func (m *MemoryStore) TopTen() ([]Score, error) {
	return slices.Clone(m.scores), nil
}

func (m *MemoryStore) RecordScore(s Score) (int, error) {
	if s.RecordedAt.IsZero() {
		s.RecordedAt = m.now()
	}
	var rank int
	m.scores, rank = insertScore(m.scores, s)
	return rank, nil
}

func (m *MemoryStore) Tombstones() ([]Tombstone, error) {
	return slices.Clone(m.tombstones), nil
}

func (m *MemoryStore) WriteTombstone(t Tombstone) (Tombstone, error) {
	t = stampTombstone(t, m.now())
	m.tombstones = append(m.tombstones, t)
	sortTombstones(m.tombstones)
	return t, nil
}
